package report

import (
	"path/filepath"

	"gopkg.in/yaml.v3"

	"vtable-generator/internal/analyze"
	"vtable-generator/internal/diagnostic"
	"vtable-generator/internal/plan"
)

// Report is the description of one declaration.
type Report struct {
	Decl        string      `yaml:"decl"`
	Package     string      `yaml:"package"`
	File        string      `yaml:"file"`
	Convention  string      `yaml:"convention"`
	TableSize   int         `yaml:"table_size"`
	Slots       []SlotRow   `yaml:"slots"`
	Data        []DataRow   `yaml:"data,omitempty"`
	Layout      *LayoutInfo `yaml:"layout,omitempty"`
	Diagnostics []string    `yaml:"diagnostics,omitempty"`
}

// SlotRow is one entry of the dispatch table. Entries no member resolves
// to have an empty Member.
type SlotRow struct {
	Index     int      `yaml:"index"`
	Member    string   `yaml:"member,omitempty"`
	Signature string   `yaml:"signature,omitempty"`
	Aliases   []string `yaml:"aliases,omitempty"`
}

// Unused reports whether no member reads this entry.
func (s SlotRow) Unused() bool {
	return s.Member == ""
}

// DataRow is a data member, with its placement when known.
type DataRow struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Offset *int64 `yaml:"offset,omitempty"`
	Size   *int64 `yaml:"size,omitempty"`
}

// LayoutInfo summarises the record layout.
type LayoutInfo struct {
	Arch  string `yaml:"arch"`
	Size  int64  `yaml:"size"`
	Align int64  `yaml:"align"`
}

// Build describes a resolved declaration. layout may be nil when the
// declaration was not type-checked; diags are reported after those of
// resolution.
func Build(r *plan.ResolvedDeclaration, layout *analyze.Layout, diags diagnostic.Diagnostics) *Report {
	d := r.Decl

	rep := &Report{
		Decl:       d.Name,
		Package:    d.Package,
		File:       filepath.ToSlash(d.Filename),
		Convention: string(d.Convention()),
		TableSize:  r.TableSize(),
		Slots:      make([]SlotRow, r.TableSize()),
	}

	for i := range rep.Slots {
		rep.Slots[i].Index = i
	}

	// Members sharing an index are listed once, under the first of them.
	for _, s := range r.Slots {
		row := &rep.Slots[s.Index]
		if !row.Unused() {
			continue
		}

		row.Member = s.Member.Name
		row.Signature = s.Member.Signature()
		row.Aliases = s.Aliases
	}

	if layout != nil {
		rep.Layout = &LayoutInfo{Arch: layout.Arch, Size: layout.Size, Align: layout.Align}

		for _, f := range layout.Fields {
			rep.Data = append(rep.Data, DataRow{
				Name:   f.Name,
				Type:   f.Type,
				Offset: &f.Offset,
				Size:   &f.Size,
			})
		}
	} else {
		rep.Data = append(rep.Data, DataRow{Name: d.Table(), Type: "unsafe.Pointer"})

		for _, m := range r.Data {
			rep.Data = append(rep.Data, DataRow{Name: m.Name, Type: m.Type})
		}
	}

	var all diagnostic.Diagnostics
	all.Merge(r.Diagnostics)
	all.Merge(diags)

	for _, diag := range all.All() {
		rep.Diagnostics = append(rep.Diagnostics, diag.Severity.String()+": "+diag.String())
	}

	return rep
}

// YAML serializes reports as a YAML sequence.
func YAML(reports []*Report) ([]byte, error) {
	return yaml.Marshal(reports)
}
