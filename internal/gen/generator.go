package gen

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/tools/imports"

	"vtable-generator/internal/plan"
)

// ToolName appears in the generated file header.
const ToolName = "vtable-generator"

// DefaultSuffix is appended to the snake-cased declaration name to form the
// output filename.
const DefaultSuffix = "_vtable.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir is the directory where generated files are written.
	// Empty means next to each declaration's file.
	OutputDir string
	// Suffix is appended to the snake-cased declaration name.
	Suffix string
	// GenerateComments adds doc comments to records and accessors that
	// have none of their own.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Suffix:           DefaultSuffix,
		GenerateComments: true,
	}
}

// Generator generates Go accessor code from resolved declarations.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Suffix == "" {
		config.Suffix = DefaultSuffix
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "math_vtable.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates one file per resolved declaration. If any declaration
// fails, no files are returned.
func (g *Generator) Generate(resolved []*plan.ResolvedDeclaration) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(resolved))
	seen := make(map[string]string)

	for _, r := range resolved {
		file, err := g.generateDeclaration(r)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", r.Decl.Name, err)
		}

		if other, dup := seen[file.Path()]; dup {
			return nil, fmt.Errorf("generating %s: %s is also the output of %s", r.Decl.Name, file.Path(), other)
		}

		seen[file.Path()] = r.Decl.Name
		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generateDeclaration(r *plan.ResolvedDeclaration) (*GeneratedFile, error) {
	data := g.buildTemplateData(r)

	dir := g.config.OutputDir
	if dir == "" {
		dir = filepath.Dir(r.Decl.Filename)
	}

	filename := snakeCase(r.Decl.Name) + g.config.Suffix

	var buf bytes.Buffer
	if err := recordTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	// Imports carried over from the declaration are pruned here.
	formatted, err := imports.Process(filepath.Join(dir, filename), buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())
		}

		return nil, fmt.Errorf("formatting code: %w", err)
	}

	Logger().Debug("generated accessors",
		zap.String("decl", r.Decl.Name),
		zap.String("file", filename),
		zap.Int("slots", len(r.Slots)),
		zap.Int("data", len(r.Data)))

	return &GeneratedFile{
		Dir:      dir,
		Filename: filename,
		Content:  formatted,
	}, nil
}

// snakeCase converts a Go identifier to a file-friendly name:
// "Math" → "math", "HTTPServer" → "http_server", "petDog" → "pet_dog".
func snakeCase(name string) string {
	runes := []rune(name)

	var b strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Template for the record file

var recordTemplate = template.Must(template.New("record").Parse(`// Code generated by ` + ToolName + ` from {{.Source}}. DO NOT EDIT.

//go:build !vtablegen

package {{.Package}}

import (
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}"{{.Path}}"
{{- end}}
)

{{range .Doc}}{{.}}
{{end -}}
type {{.Name}} struct {
	_ structs.HostLayout

	{{.Table}} unsafe.Pointer
{{- range .Data}}
{{range .Doc}}	{{.}}
{{end}}	{{if not .Embedded}}{{.Name}} {{end}}{{.Type}}{{if .Tag}} {{.Tag}}{{end}}{{if .Comment}} {{.Comment}}{{end}}
{{- end}}
}

// {{.Entry}} returns the address of entry i of the dispatch table. Entries
// are not bounds checked: the table belongs to the foreign allocator and
// must hold at least {{.TableEntries}}.
func ({{.Receiver}} *{{.Name}}) {{.Entry}}(i uintptr) unsafe.Pointer {
	return unsafe.Add({{.Receiver}}.{{.Table}}, i*unsafe.Sizeof(uintptr(0)))
}
{{range .Accessors}}
{{range .Doc}}{{.}}
{{end -}}
func ({{$.Receiver}} *{{$.Name}}) {{.Name}}({{.Params}}){{if .Results}} {{.Results}}{{end}} {
{{- if $.Native}}
	var {{.Local}} {{.FuncType}}
	purego.RegisterFunc(&{{.Local}}, *(*uintptr)({{$.Receiver}}.{{$.Entry}}({{.Slot}})))
	{{if .Results}}return {{end}}{{.Local}}({{.Args}})
{{- else}}
	{{if .Results}}return {{end}}(*(*{{.FuncType}})({{$.Receiver}}.{{$.Entry}}({{.Slot}})))({{.Args}})
{{- end}}
}
{{end}}`))
