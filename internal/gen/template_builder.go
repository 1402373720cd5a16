package gen

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"vtable-generator/internal/decl"
	"vtable-generator/internal/plan"
)

const puregoPath = "github.com/ebitengine/purego"

// templateData holds all data needed for the record template.
type templateData struct {
	Source       string
	Package      string
	Imports      []importSpec
	Doc          []string
	Name         string
	Table        string
	Entry        string
	Receiver     string
	TableEntries string // minimum table size with its noun, e.g. "1 entry"
	Native       bool
	Data         []dataField
	Accessors    []accessorData
}

// importSpec represents an import statement.
type importSpec struct {
	Name string
	Path string
}

// dataField is a data member reproduced in the record.
type dataField struct {
	Doc      []string
	Name     string
	Type     string
	Tag      string
	Comment  string
	Embedded bool
}

// accessorData describes the method emitted for one slot member.
type accessorData struct {
	Doc      []string
	Name     string
	Slot     int
	Params   string // declared parameter list
	Results  string // declared results
	FuncType string // entry type: receiver pointer prepended to the params
	Args     string // receiver followed by the declared arguments
	Local    string // native convention: bound func variable
}

// buildTemplateData constructs the template data from a resolved declaration.
func (g *Generator) buildTemplateData(r *plan.ResolvedDeclaration) *templateData {
	d := r.Decl

	data := &templateData{
		Source:       filepath.Base(d.Filename),
		Package:      d.Package,
		Imports:      collectImports(d),
		Doc:          d.Doc,
		Name:         d.Name,
		Table:        d.Table(),
		Entry:        d.Entry(),
		Receiver:     d.Receiver(),
		TableEntries: entries(r.TableSize()),
		Native:       d.Convention() == decl.ConventionNative,
	}

	if len(data.Doc) == 0 && g.config.GenerateComments {
		data.Doc = []string{fmt.Sprintf("// %s mirrors a foreign object whose first word points at its dispatch table.", d.Name)}
	}

	for _, m := range r.Data {
		data.Data = append(data.Data, dataField{
			Doc:      m.Doc,
			Name:     m.Name,
			Type:     m.Type,
			Tag:      m.Tag,
			Comment:  m.Comment,
			Embedded: m.Embedded,
		})
	}

	for _, s := range r.Slots {
		data.Accessors = append(data.Accessors, g.buildAccessor(r, s))
	}

	return data
}

func (g *Generator) buildAccessor(r *plan.ResolvedDeclaration, s plan.ResolvedSlot) accessorData {
	d, m := r.Decl, s.Member

	entryParams := "*" + d.Name
	if types := m.ParamTypes(); types != "" {
		entryParams += ", " + types
	}

	funcType := "func(" + entryParams + ")"
	if res := m.ResultList(); res != "" {
		funcType += " " + res
	}

	args := d.Receiver()
	if a := m.Args(); a != "" {
		args += ", " + a
	}

	acc := accessorData{
		Doc:      m.Doc,
		Name:     m.Name,
		Slot:     s.Index,
		Params:   m.ParamList(),
		Results:  m.ResultList(),
		FuncType: funcType,
		Args:     args,
		Local:    localName(m),
	}

	if len(acc.Doc) == 0 && g.config.GenerateComments {
		acc.Doc = []string{fmt.Sprintf("// %s calls entry %d of the dispatch table.", m.Name, s.Index)}
	}

	return acc
}

func entries(n int) string {
	if n == 1 {
		return "1 entry"
	}

	return fmt.Sprintf("%d entries", n)
}

// localName picks a name for the bound func variable that no parameter uses.
func localName(m *decl.Member) string {
	name := "fn"

	for {
		clash := false

		for _, p := range m.Params {
			if p.Name == name {
				clash = true
				break
			}
		}

		if !clash {
			return name
		}

		name += "_"
	}
}

// collectImports returns the declaring file's imports plus those the record
// always needs, sorted by path. Unused ones are pruned after formatting.
func collectImports(d *decl.Declaration) []importSpec {
	byPath := map[string]importSpec{
		"structs": {Path: "structs"},
		"unsafe":  {Path: "unsafe"},
	}

	if d.Convention() == decl.ConventionNative {
		byPath[puregoPath] = importSpec{Path: puregoPath}
	}

	for _, imp := range d.Imports {
		// Blank and dot imports only make sense in the declaring file.
		if imp.Name == "_" || imp.Name == "." || imp.Path == "C" {
			continue
		}

		byPath[imp.Path] = importSpec{Name: imp.Name, Path: imp.Path}
	}

	out := make([]importSpec, 0, len(byPath))
	for _, imp := range byPath {
		out = append(out, imp)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Path, out[j].Path) < 0
	})

	return out
}
