package main

import (
	"flag"
	"io"
	"strings"
)

type command string

const (
	cmdGen     command = "gen"
	cmdCheck   command = "check"
	cmdInspect command = "inspect"
)

// options are the parsed command-line flags. set records which flags were
// given explicitly so they can override the config file.
type options struct {
	config        string
	out           string
	suffix        string
	types         []string
	typecheck     bool
	rejectAliases bool
	noComments    bool
	arch          string
	format        string
	verbose       bool
	dump          bool
	inputs        []string
	set           map[string]bool
}

func parseFlags(cmd command, args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet(string(cmd), flag.ContinueOnError)
	fs.SetOutput(stderr)

	var types string

	fs.StringVar(&opts.config, "config", "", "Path to vtablegen.yaml (default ./vtablegen.yaml if present)")
	fs.StringVar(&types, "type", "", "Comma-separated declaration names to process (default all marked types)")
	fs.BoolVar(&opts.typecheck, "typecheck", false, "Load the package with -tags=vtablegen and type-check declarations")
	fs.BoolVar(&opts.rejectAliases, "reject-aliases", false, "Treat two members sharing a slot as an error")
	fs.StringVar(&opts.arch, "arch", "", "GOARCH for layout computation (default host)")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose (debug) logging")
	fs.BoolVar(&opts.dump, "dump", false, "Dump parsed declarations to stderr")

	if cmd == cmdGen {
		fs.StringVar(&opts.out, "out", "", "Output directory (default next to each declaration)")
		fs.StringVar(&opts.suffix, "suffix", "", "Generated filename suffix (default _vtable.go)")
		fs.BoolVar(&opts.noComments, "no-comments", false, "Do not add doc comments to undocumented records and accessors")
	}

	if cmd == cmdInspect {
		fs.StringVar(&opts.format, "format", "table", "Output format: table or yaml")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	if types != "" {
		for _, t := range strings.Split(types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				opts.types = append(opts.types, t)
			}
		}
	}

	opts.inputs = fs.Args()

	return opts, nil
}
