package config

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// Validate checks a parsed File and returns every problem found, joined.
func Validate(f *File) error {
	if f == nil {
		return errors.New("config is nil")
	}

	var errs []error

	if f.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("unsupported version %q (want %q)", f.Version, CurrentVersion))
	}

	if f.Suffix != "" && !strings.HasSuffix(f.Suffix, ".go") {
		errs = append(errs, fmt.Errorf("suffix %q must end in .go", f.Suffix))
	}

	if f.Suffix != "" && strings.HasSuffix(f.Suffix, "_test.go") {
		errs = append(errs, fmt.Errorf("suffix %q would produce test files", f.Suffix))
	}

	if len(f.Jobs) == 0 {
		errs = append(errs, errors.New("no jobs"))
	}

	seen := make(map[string]int)

	for i, job := range f.Jobs {
		switch {
		case job.Input == "":
			errs = append(errs, fmt.Errorf("jobs[%d]: input is required", i))
		case !strings.HasSuffix(job.Input, ".go"):
			errs = append(errs, fmt.Errorf("jobs[%d]: input %q is not a Go file", i, job.Input))
		default:
			if prev, dup := seen[job.Input]; dup {
				errs = append(errs, fmt.Errorf("jobs[%d]: input %q already listed by jobs[%d]", i, job.Input, prev))
			}

			seen[job.Input] = i
		}

		for _, name := range job.Types {
			if !token.IsIdentifier(name) {
				errs = append(errs, fmt.Errorf("jobs[%d]: %q is not a type name", i, name))
			}
		}
	}

	return errors.Join(errs...)
}
