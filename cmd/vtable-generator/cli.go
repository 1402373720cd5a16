package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"vtable-generator/internal/analyze"
	"vtable-generator/internal/config"
	"vtable-generator/internal/decl"
	"vtable-generator/internal/diagnostic"
	"vtable-generator/internal/gen"
	"vtable-generator/internal/plan"
	"vtable-generator/internal/report"
)

// errFailed reports that diagnostics were printed and the run must fail.
var errFailed = errors.New("generation failed")

type cli struct {
	cmd    command
	opts   *options
	file   *config.File
	log    *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

func newCLI(cmd command, opts *options, stdout, stderr io.Writer) (*cli, error) {
	log, err := newLogger(opts.verbose)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	decl.SetLogger(log.Named("decl"))
	plan.SetLogger(log.Named("plan"))
	gen.SetLogger(log.Named("gen"))
	analyze.SetLogger(log.Named("analyze"))

	file, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	return &cli{cmd: cmd, opts: opts, file: file, log: log, stdout: stdout, stderr: stderr}, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"

	return cfg.Build()
}

func (c *cli) close() {
	_ = c.log.Sync()
}

// loadConfig reads the config file named by -config, or ./vtablegen.yaml
// when it exists, and applies flag overrides. Without either, defaults
// are used.
func loadConfig(opts *options) (*config.File, error) {
	path := opts.config
	if path == "" {
		if _, err := os.Stat(config.DefaultFilename); err == nil {
			path = config.DefaultFilename
		}
	}

	file := &config.File{Version: config.CurrentVersion}

	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}

		file = loaded
	}

	if opts.set["out"] {
		file.Output = opts.out
	}

	if opts.set["suffix"] {
		file.Suffix = opts.suffix
	}

	if opts.set["no-comments"] {
		comments := !opts.noComments
		file.Comments = &comments
	}

	if opts.set["typecheck"] {
		file.Typecheck = opts.typecheck
	}

	if opts.set["reject-aliases"] {
		file.RejectAliases = opts.rejectAliases
	}

	if opts.set["arch"] {
		file.Arch = opts.arch
	}

	return file, nil
}

// jobs returns the files to process: command-line inputs, else $GOFILE,
// else the config file's jobs. -type narrows every job.
func (c *cli) jobs() ([]config.Job, error) {
	var jobs []config.Job

	switch {
	case len(c.opts.inputs) > 0:
		for _, in := range c.opts.inputs {
			jobs = append(jobs, config.Job{Input: in})
		}
	case os.Getenv("GOFILE") != "":
		jobs = append(jobs, config.Job{Input: os.Getenv("GOFILE")})
	default:
		jobs = c.file.Jobs
	}

	if len(jobs) == 0 {
		return nil, errors.New("no input files: name them, run under go generate, or list jobs in " + config.DefaultFilename)
	}

	if len(c.opts.types) > 0 {
		for i := range jobs {
			jobs[i].Types = c.opts.types
		}
	}

	return jobs, nil
}

func (c *cli) execute() error {
	jobs, err := c.jobs()
	if err != nil {
		return err
	}

	decls, ok := c.parse(jobs)

	if c.opts.dump {
		spew.Fdump(c.stderr, decls)
	}

	resolved, err := plan.NewResolver(c.file.ResolutionConfig()).ResolveAll(decls)
	if err != nil {
		c.printError(err)
		return errFailed
	}

	for _, r := range resolved {
		c.printDiagnostics(r.Diagnostics)
	}

	var (
		layouts = make(map[*plan.ResolvedDeclaration]*analyze.Layout)
		extra   = make(map[*plan.ResolvedDeclaration]diagnostic.Diagnostics)
	)

	if c.file.Typecheck {
		analyzer := analyze.NewAnalyzer(c.file.Arch)

		for _, r := range resolved {
			layout, diags, err := analyzer.Analyze(r)
			if err != nil {
				fmt.Fprintf(c.stderr, "%s: %v\n", r.Decl.Pos, err)
				ok = false

				continue
			}

			c.printDiagnostics(diags)
			layouts[r] = layout
			extra[r] = diags
		}
	}

	// Parse and type errors abort after every file has been reported.
	if !ok {
		return errFailed
	}

	switch c.cmd {
	case cmdGen:
		return c.generate(resolved)
	case cmdCheck:
		fmt.Fprintf(c.stdout, "ok: %d declaration(s)\n", len(resolved))
		return nil
	case cmdInspect:
		reports := make([]*report.Report, 0, len(resolved))
		for _, r := range resolved {
			reports = append(reports, report.Build(r, layouts[r], extra[r]))
		}

		return c.inspect(reports)
	}

	return fmt.Errorf("unknown command %q", c.cmd)
}

// parse reads every job's file. It keeps going after a failing file so
// that all problems are reported; ok is false if any file failed.
func (c *cli) parse(jobs []config.Job) ([]*decl.Declaration, bool) {
	var (
		out []*decl.Declaration
		ok  = true
	)

	for _, job := range jobs {
		decls, err := decl.ParseFile(job.Input)
		if err != nil {
			c.printError(err)
			ok = false

			continue
		}

		matched := 0

		for _, d := range decls {
			if job.Wants(d.Name) {
				out = append(out, d)
				matched++
			}
		}

		if matched == 0 {
			fmt.Fprintf(c.stderr, "%s: no //vtable:generate declarations%s\n", job.Input, typesSuffix(job))
			ok = false
		}

		c.log.Debug("parsed input",
			zap.String("file", job.Input),
			zap.Int("declarations", len(decls)),
			zap.Int("selected", matched))
	}

	return out, ok
}

func typesSuffix(job config.Job) string {
	if job.Types.IsEmpty() {
		return ""
	}

	return fmt.Sprintf(" named %v", []string(job.Types))
}

func (c *cli) generate(resolved []*plan.ResolvedDeclaration) error {
	files, err := gen.NewGenerator(c.file.GeneratorConfig()).Generate(resolved)
	if err != nil {
		return err
	}

	return gen.WriteFiles(files)
}

func (c *cli) inspect(reports []*report.Report) error {
	switch c.opts.format {
	case "yaml":
		data, err := report.YAML(reports)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}

		_, err = c.stdout.Write(data)

		return err
	case "table", "":
		styled := false
		if f, isFile := c.stdout.(*os.File); isFile {
			styled = report.IsTerminal(f)
		}

		return report.Render(c.stdout, reports, styled)
	default:
		return fmt.Errorf("unknown format %q (want table or yaml)", c.opts.format)
	}
}

// printError prints each diagnostic of a *diagnostic.Error on its own line,
// or the error itself.
func (c *cli) printError(err error) {
	var derr *diagnostic.Error
	if errors.As(err, &derr) {
		for _, d := range derr.Diagnostics {
			fmt.Fprintf(c.stderr, "%s: %s\n", d.Severity, d)
		}

		return
	}

	fmt.Fprintln(c.stderr, err)
}

// printDiagnostics prints warnings, and infos when verbose.
func (c *cli) printDiagnostics(diags diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		fmt.Fprintf(c.stderr, "%s: %s\n", d.Severity, d)
	}

	if !c.opts.verbose {
		return
	}

	for _, d := range diags.Infos {
		fmt.Fprintf(c.stderr, "%s: %s\n", d.Severity, d)
	}
}
