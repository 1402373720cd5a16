// Package main provides the CLI entrypoint for vtable-generator.
//
// vtable-generator turns struct declarations marked with //vtable:generate
// into records that mirror foreign objects whose first word points at a
// dispatch table, plus one accessor method per table slot.
//
// Usage:
//
//	vtable-generator gen [flags] [file.go ...]
//	vtable-generator check [flags] [file.go ...]
//	vtable-generator inspect [flags] [file.go ...]
//
// Under go generate the declaring file is taken from $GOFILE:
//
//	//go:generate go run vtable-generator/cmd/vtable-generator gen $GOFILE
package main

import (
	"fmt"
	"io"
	"os"

	"vtable-generator/internal/match"
)

const usage = `Usage: vtable-generator <command> [flags] [file.go ...]

Commands:
  gen      parse, resolve and write accessor files
  check    parse and resolve without writing
  inspect  print slot tables and record layouts

Inputs are the files named on the command line, else $GOFILE, else the
jobs of the config file (-config, default ./vtablegen.yaml).
Run 'vtable-generator <command> -h' for flags.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var cmd command

	switch args[0] {
	case "gen":
		cmd = cmdGen
	case "check":
		cmd = cmdCheck
	case "inspect":
		cmd = cmdInspect
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		hint := match.Hint(args[0], []string{string(cmdGen), string(cmdCheck), string(cmdInspect)})
		fmt.Fprintf(stderr, "unknown command %q%s\n\n%s", args[0], hint, usage)
		return 2
	}

	opts, err := parseFlags(cmd, args[1:], stderr)
	if err != nil {
		return 2
	}

	c, err := newCLI(cmd, opts, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer c.close()

	if err := c.execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}
