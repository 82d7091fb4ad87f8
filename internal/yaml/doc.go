// Package yaml provides the YAML implementation of config.Loader.
//
// Documents are decoded through yaml.Node rather than into Go maps so that
// mapping order survives: variant declaration order assigns variant bits, and
// shader, stage and variant order drive the order of generated output.
//
// Environment document:
//
//	env:                       # optional wrapper
//	  includes: [shaders/include]
//	  source_dir: shaders
//	  compiler:
//	    path: glslc
//	    flags: -O --target-env=vulkan1.2
//	    profiles:
//	      debug: {flags: [-g, -O0]}
//	      release: -O
//	  variants:
//	    - LOW: -DQUALITY=0
//	    - HIGH: [-DQUALITY=2]
//
// Manifest document:
//
//	scene:                     # namespace
//	  mesh:                    # shader
//	    id: 0x10
//	    stages:
//	      - vs: mesh.vert      # short form
//	      - fs:
//	          src: mesh.frag
//	          compiler_flags: [-DLIT]
//	          variants:
//	            - low: LOW
//	            - both: [LOW, HIGH]
package yaml
