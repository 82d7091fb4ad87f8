// Package config defines the strictly typed configuration schema of a
// generation run, along with the Loader interface that format-specific
// packages implement.
//
// Two kinds of documents exist. The environment (Env) describes the
// toolchain: include search directories, the source root, the compiler and
// its profiles, and the ordered list of variants. Manifests map namespaces to
// shader declarations.
//
// Loaders only decode; all structural validation happens here, once, so the
// rest of the program works on fully validated values. Every defect found in
// one document is reported together as a single builderr ConfigError.
// Concrete loaders for YAML and HCL live in separate packages.
package config
