// Package config loads vtablegen.yaml, the optional project file listing
// declaration files to generate and the settings shared by every run.
//
// Example:
//
//	version: "1"
//	output: ""
//	suffix: _vtable.go
//	typecheck: true
//	jobs:
//	  - input: example/math/math_decl.go
//	    types: Math
//	  - input: example/att/att_decl.go
//
// Relative paths are resolved against the directory holding the file.
package config
