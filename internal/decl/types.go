package decl

import (
	"fmt"
	"go/token"
	"strings"
)

// Default identifiers used by the emitted code.
const (
	DefaultTable    = "vtable"
	DefaultReceiver = "self"
)

// Declaration is a struct type marked with //vtable:generate.
type Declaration struct {
	Name     string         // type name; its case is the visibility
	Package  string         // package clause of the declaring file
	Filename string         // declaring file
	Pos      token.Position // position of the type name
	Doc      []string       // passthrough doc comment lines, directives removed
	Options  Options        // options from the marker line
	Members  []*Member      // members in source order
	Imports  []Import       // imports of the declaring file
}

// Exported reports whether the declaration is visible outside its package.
func (d *Declaration) Exported() bool {
	return token.IsExported(d.Name)
}

// Slots returns the slot members in declaration order.
func (d *Declaration) Slots() []*Member {
	return d.filter(MemberSlot)
}

// Data returns the data members in declaration order.
func (d *Declaration) Data() []*Member {
	return d.filter(MemberData)
}

func (d *Declaration) filter(kind MemberKind) []*Member {
	var out []*Member

	for _, m := range d.Members {
		if m.Kind == kind {
			out = append(out, m)
		}
	}

	return out
}

// Table returns the name of the table-pointer field.
func (d *Declaration) Table() string {
	if d.Options.Table != "" {
		return d.Options.Table
	}

	return DefaultTable
}

// Entry returns the name of the generated slot-address helper.
func (d *Declaration) Entry() string {
	return d.Table() + "Entry"
}

// Receiver returns the receiver identifier for accessors.
func (d *Declaration) Receiver() string {
	if d.Options.Receiver != "" {
		return d.Options.Receiver
	}

	return DefaultReceiver
}

// Convention returns the calling convention, defaulting to ConventionGo.
func (d *Declaration) Convention() Convention {
	if d.Options.Convention == "" {
		return ConventionGo
	}

	return d.Options.Convention
}

// Options are the key=value pairs following //vtable:generate.
type Options struct {
	Convention Convention
	Table      string
	Receiver   string
}

// Import is one import spec of the declaring file.
type Import struct {
	Name string // explicit package name, empty if none
	Path string // unquoted import path
}

// Member is one field of a declaration.
type Member struct {
	Name       string
	Kind       MemberKind
	Type       string         // type expression as written
	Tag        string         // raw struct tag literal including quotes
	Doc        []string       // doc comment lines, directives removed
	Comment    string         // trailing line comment, directives removed
	Params     []Param        // slot members only
	Results    []string       // slot members only
	Variadic   bool           // last param is ...T
	Embedded   bool           // data member without a field name
	Directives []Directive    // slot members only
	Pos        token.Position // position of the member name
}

// Exported reports whether the member is visible outside its package.
func (m *Member) Exported() bool {
	return token.IsExported(m.Name)
}

// ParamList renders the parameters as a signature list: "a int32, b int32".
func (m *Member) ParamList() string {
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = p.Name + " " + p.Type
	}

	return strings.Join(parts, ", ")
}

// ParamTypes renders only the parameter types: "int32, int32".
func (m *Member) ParamTypes() string {
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = p.Type
	}

	return strings.Join(parts, ", ")
}

// ResultList renders the result types as they appear after a signature.
func (m *Member) ResultList() string {
	switch len(m.Results) {
	case 0:
		return ""
	case 1:
		return m.Results[0]
	default:
		return "(" + strings.Join(m.Results, ", ") + ")"
	}
}

// Args renders the call arguments for the parameters: "a, b" or "a, rest...".
func (m *Member) Args() string {
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = p.Name
	}

	if m.Variadic && len(parts) > 0 {
		parts[len(parts)-1] += "..."
	}

	return strings.Join(parts, ", ")
}

// Signature renders the member as written: "func(a int32, b int32) int32".
func (m *Member) Signature() string {
	if m.Kind != MemberSlot {
		return m.Type
	}

	sig := "func(" + m.ParamList() + ")"
	if res := m.ResultList(); res != "" {
		sig += " " + res
	}

	return sig
}

// Param is a named slot member parameter. Unnamed parameters receive a
// synthesised name.
type Param struct {
	Name string
	Type string
}

// Directive is one //vtable: directive attached to a member.
type Directive struct {
	Kind  DirectiveKind
	Value int
	Raw   string // comment text as written
	Pos   token.Position
}

// String renders the directive in call form, e.g. "skip(-1)".
func (d Directive) String() string {
	return fmt.Sprintf("%s(%d)", d.Kind, d.Value)
}
