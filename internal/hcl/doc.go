// Package hcl provides the HCL implementation of config.Loader. Environment
// and manifest files written in HCL carry the same schema as their YAML
// counterparts, expressed as blocks so declaration order is kept.
//
// Environment file:
//
//	includes   = ["shaders/include"]
//	source_dir = "shaders"
//
//	compiler {
//	  path  = "glslc"
//	  flags = "-O --target-env=vulkan1.2"
//
//	  profile "debug" {
//	    flags = ["-g", "-O0"]
//	  }
//	}
//
//	variant "LOW" {
//	  flags = "-DQUALITY=0"
//	}
//
// Manifest file:
//
//	namespace "scene" {
//	  shader "mesh" {
//	    id = 16 # or "0x10"
//
//	    stage "vs" {
//	      src = "mesh.vert"
//	    }
//	    stage "fs" {
//	      src            = "mesh.frag"
//	      compiler_flags = ["-DLIT"]
//	      variant "low" { use = ["LOW"] }
//	    }
//	  }
//	}
package hcl
