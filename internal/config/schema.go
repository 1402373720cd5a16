package config

import (
	"slices"

	"vtable-generator/internal/gen"
	"vtable-generator/internal/plan"
)

// DefaultFilename is looked up in the working directory when no -config
// flag is given.
const DefaultFilename = "vtablegen.yaml"

// CurrentVersion is the only schema version understood.
const CurrentVersion = "1"

// File is the root of vtablegen.yaml.
type File struct {
	Version       string `yaml:"version"`
	Output        string `yaml:"output,omitempty"`
	Suffix        string `yaml:"suffix,omitempty"`
	Comments      *bool  `yaml:"comments,omitempty"`
	Typecheck     bool   `yaml:"typecheck,omitempty"`
	RejectAliases bool   `yaml:"reject_aliases,omitempty"`
	Arch          string `yaml:"arch,omitempty"`
	Jobs          []Job  `yaml:"jobs"`
}

// Job names one declaration file and, optionally, the types in it to
// generate.
type Job struct {
	Input string        `yaml:"input"`
	Types StringOrArray `yaml:"types,omitempty"`
}

// Wants reports whether the job covers the named declaration. A job with
// no types covers every marked type in its file.
func (j Job) Wants(name string) bool {
	return j.Types.IsEmpty() || slices.Contains(j.Types, name)
}

// GeneratorConfig returns the generator settings described by the file.
func (f *File) GeneratorConfig() gen.GeneratorConfig {
	cfg := gen.DefaultGeneratorConfig()
	cfg.OutputDir = f.Output

	if f.Suffix != "" {
		cfg.Suffix = f.Suffix
	}

	if f.Comments != nil {
		cfg.GenerateComments = *f.Comments
	}

	return cfg
}

// ResolutionConfig returns the slot resolution settings described by the
// file.
func (f *File) ResolutionConfig() plan.ResolutionConfig {
	cfg := plan.DefaultConfig()
	cfg.RejectAliases = f.RejectAliases

	return cfg
}

// StringOrArray is a type that can be unmarshaled from either a string or an array of strings.
// Used for job types: "types: Math" or "types: [Math, Bar]".
type StringOrArray []string

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return len(s) == 0
}
