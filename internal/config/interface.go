package config

import "context"

// Loader is the interface for a format-specific configuration loader. Both
// methods return documents that still need Validate; MultiLoader takes care
// of that.
type Loader interface {
	// LoadEnv decodes the environment document at path.
	LoadEnv(ctx context.Context, path string) (*Env, error)
	// LoadManifest decodes the manifest document at path.
	LoadManifest(ctx context.Context, path string) (*Manifest, error)
}
