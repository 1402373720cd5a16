package decl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtable-generator/internal/diagnostic"
)

const mathSource = `package math

import "fmt"

// Math is the engine interface.
//
//vtable:generate
type Math struct {
	Internal int32 ` + "`json:\"internal\"`" + ` // set by the constructor

	Add func(a, b int32) int32
	//vtable:offset 1
	Add2 func(a int32, b int32) int32
}

var _ = fmt.Sprint
`

func parseErr(t *testing.T, src string) *diagnostic.Error {
	t.Helper()

	_, err := ParseSource("decl.go", src)
	require.Error(t, err)

	var diagErr *diagnostic.Error
	require.True(t, errors.As(err, &diagErr), "expected *diagnostic.Error, got %T", err)

	return diagErr
}

func TestParseSource_ClassifiesMembers(t *testing.T) {
	decls, err := ParseSource("math.go", mathSource)
	require.NoError(t, err)
	require.Len(t, decls, 1)

	d := decls[0]
	assert.Equal(t, "Math", d.Name)
	assert.Equal(t, "math", d.Package)
	assert.True(t, d.Exported())
	assert.Equal(t, []string{"// Math is the engine interface."}, d.Doc)
	assert.Equal(t, []Import{{Path: "fmt"}}, d.Imports)

	require.Len(t, d.Members, 3)

	internal := d.Members[0]
	assert.Equal(t, MemberData, internal.Kind)
	assert.Equal(t, "int32", internal.Type)
	assert.Equal(t, "`json:\"internal\"`", internal.Tag)
	assert.Equal(t, "// set by the constructor", internal.Comment)

	add := d.Members[1]
	assert.Equal(t, MemberSlot, add.Kind)
	assert.Equal(t, []Param{{Name: "a", Type: "int32"}, {Name: "b", Type: "int32"}}, add.Params)
	assert.Equal(t, []string{"int32"}, add.Results)
	assert.Empty(t, add.Directives)

	add2 := d.Members[2]
	require.Len(t, add2.Directives, 1)
	assert.Equal(t, DirectiveOffset, add2.Directives[0].Kind)
	assert.Equal(t, 1, add2.Directives[0].Value)
	assert.Empty(t, add2.Doc, "directive lines are not passed through")

	assert.Len(t, d.Slots(), 2)
	assert.Len(t, d.Data(), 1)
}

func TestParseFile_Testdata(t *testing.T) {
	decls, err := ParseFile("testdata/pet.go")
	require.NoError(t, err)
	require.Len(t, decls, 1, "unannotated types are skipped")

	pug := decls[0]
	assert.Equal(t, "Pug", pug.Name)

	var names []string
	for _, m := range pug.Members {
		names = append(names, m.Kind.String()+":"+m.Name)
	}

	assert.Equal(t, []string{"data:Name", "data:Age", "slot:GetName", "slot:Speak", "slot:GetAge"}, names)

	speak := pug.Members[3]
	assert.Equal(t, []string{"// Speak is declared by Dog."}, speak.Doc)
	assert.Equal(t, []string{"unsafe.Pointer"}, speak.Results)
}

func TestParseSource_SyntheticParamNames(t *testing.T) {
	src := `package p

//vtable:generate
type T struct {
	F func(_ int32, _ string, arg0 bool, rest ...byte) (int, error)
	G func(int32, string) bool
}
`
	decls, err := ParseSource("p.go", src)
	require.NoError(t, err)

	f := decls[0].Members[0]
	assert.Equal(t, []Param{
		{Name: "arg0_", Type: "int32"},
		{Name: "arg1", Type: "string"},
		{Name: "arg0", Type: "bool"},
		{Name: "rest", Type: "...byte"},
	}, f.Params)
	assert.True(t, f.Variadic)
	assert.Equal(t, "arg0_, arg1, arg0, rest...", f.Args())
	assert.Equal(t, "(int, error)", f.ResultList())
	assert.Equal(t, "func(arg0_ int32, arg1 string, arg0 bool, rest ...byte) (int, error)", f.Signature())

	g := decls[0].Members[1]
	assert.Equal(t, []Param{{Name: "arg0", Type: "int32"}, {Name: "arg1", Type: "string"}}, g.Params)
	assert.False(t, g.Variadic)
	assert.Equal(t, "bool", g.ResultList())
}

func TestParseSource_GroupedAndEmbedded(t *testing.T) {
	src := `package p

import "sync"

//vtable:generate
type T struct {
	sync.Mutex
	X, Y float64
	A, B func()
}
`
	decls, err := ParseSource("p.go", src)
	require.NoError(t, err)

	members := decls[0].Members
	require.Len(t, members, 5)

	assert.Equal(t, "Mutex", members[0].Name)
	assert.True(t, members[0].Embedded)
	assert.Equal(t, "sync.Mutex", members[0].Type)

	assert.Equal(t, "X", members[1].Name)
	assert.Equal(t, "Y", members[2].Name)
	assert.Equal(t, MemberSlot, members[3].Kind)
	assert.Equal(t, MemberSlot, members[4].Kind)
}

func TestParseSource_GroupedTypeDecl(t *testing.T) {
	src := `package p

type (
	// A is generated.
	//vtable:generate table=vptr receiver=obj convention=native
	A struct {
		F func()
	}

	B struct {
		G func()
	}
)
`
	decls, err := ParseSource("p.go", src)
	require.NoError(t, err)
	require.Len(t, decls, 1)

	a := decls[0]
	assert.Equal(t, "vptr", a.Table())
	assert.Equal(t, "vptrEntry", a.Entry())
	assert.Equal(t, "obj", a.Receiver())
	assert.Equal(t, ConventionNative, a.Convention())
}

func TestParseSource_Defaults(t *testing.T) {
	decls, err := ParseSource("math.go", mathSource)
	require.NoError(t, err)

	d := decls[0]
	assert.Equal(t, DefaultTable, d.Table())
	assert.Equal(t, DefaultReceiver, d.Receiver())
	assert.Equal(t, ConventionGo, d.Convention())
}

func TestParseSource_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		code   diagnostic.Code
		member string
	}{
		{
			name:   "non-integer offset",
			body:   "//vtable:offset one\n\tF func()",
			code:   diagnostic.CodeBadLiteral,
			member: "F",
		},
		{
			name:   "offset out of range",
			body:   "//vtable:offset 9223372036854775807\n\tA func()\n\tB func()",
			code:   diagnostic.CodeBadLiteral,
			member: "A",
		},
		{
			name:   "missing argument",
			body:   "//vtable:check\n\tF func()",
			code:   diagnostic.CodeBadLiteral,
			member: "F",
		},
		{
			name:   "directive on data member",
			body:   "//vtable:offset 2\n\tX int32",
			code:   diagnostic.CodeDataDirective,
			member: "X",
		},
		{
			name:   "trailing directive on data member",
			body:   "X int32 //vtable:skip 1",
			code:   diagnostic.CodeDataDirective,
			member: "X",
		},
		{
			name:   "unknown directive",
			body:   "//vtable:align 8\n\tF func()",
			code:   diagnostic.CodeUnknownDirective,
			member: "F",
		},
		{
			name:   "member named like the table",
			body:   "vtable int32",
			code:   diagnostic.CodeReservedName,
			member: "vtable",
		},
		{
			name:   "parameter shadows receiver",
			body:   "F func(self int32)",
			code:   diagnostic.CodeReservedName,
			member: "F",
		},
		{
			name:   "parameter shadows package of its type",
			body:   "Sleep func(time time.Duration) int32",
			code:   diagnostic.CodeReservedName,
			member: "Sleep",
		},
		{
			name:   "parameter shadows result type",
			body:   "Get func(Handle int32) Handle",
			code:   diagnostic.CodeReservedName,
			member: "Get",
		},
		{
			name:   "parameter shadows record type",
			body:   "Copy func(T int32)",
			code:   diagnostic.CodeReservedName,
			member: "Copy",
		},
		{
			name:   "blank slot",
			body:   "_ func()",
			code:   diagnostic.CodeUnsupported,
			member: "_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "package p\n\n//vtable:generate\ntype T struct {\n\t" + tt.body + "\n}\n"

			diagErr := parseErr(t, src)
			require.NotEmpty(t, diagErr.Diagnostics)
			assert.True(t, diagErr.Has(tt.code), "want %s in %v", tt.code, diagErr)
			assert.Equal(t, "T", diagErr.Diagnostics[0].Decl)
			assert.Equal(t, tt.member, diagErr.Diagnostics[0].Member)
		})
	}
}

func TestParseSource_ShadowingMessage(t *testing.T) {
	src := "package p\n\nimport \"time\"\n\n//vtable:generate\ntype Timer struct {\n\tSleep func(time time.Duration) int32\n}\n"

	diagErr := parseErr(t, src)
	require.Len(t, diagErr.Diagnostics, 1)
	assert.Equal(t, diagnostic.CodeReservedName, diagErr.Diagnostics[0].Code)
	assert.Contains(t, diagErr.Diagnostics[0].Message, `parameter "time" shadows the package time`)
}

func TestParseSource_NativeShadowing(t *testing.T) {
	for _, name := range []string{"purego", "uintptr"} {
		t.Run(name, func(t *testing.T) {
			src := "package p\n\n//vtable:generate convention=native\ntype T struct {\n\tF func(" + name + " int32)\n}\n"

			diagErr := parseErr(t, src)
			assert.True(t, diagErr.Has(diagnostic.CodeReservedName))
		})
	}

	// The go convention body uses neither.
	_, err := ParseSource("t.go", "package p\n\n//vtable:generate\ntype T struct {\n\tF func(uintptr int32)\n}\n")
	assert.NoError(t, err)
}

func TestParseSource_SelectedNamesDoNotShadow(t *testing.T) {
	src := `package p

import "time"

//vtable:generate
type Timer struct {
	Wait func(Duration time.Duration, cb func(ok bool)) (n int32)
}
`

	decls, err := ParseSource("timer.go", src)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "Duration", decls[0].Members[0].Params[0].Name)
}

func TestParseSource_BadLiteralMessage(t *testing.T) {
	src := "package p\n\n//vtable:generate\ntype T struct {\n\t//vtable:skip(x)\n\tF func()\n}\n"

	diagErr := parseErr(t, src)
	msg := diagErr.Error()

	assert.Contains(t, msg, "T.F")
	assert.Contains(t, msg, "skip(x)")
	assert.Contains(t, msg, "expected integer literal")
	assert.Contains(t, msg, `"x"`)
}

func TestParseSource_UnsupportedDeclarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diagnostic.Code
	}{
		{
			name: "not a struct",
			src:  "package p\n\n//vtable:generate\ntype T func()\n",
			code: diagnostic.CodeUnsupported,
		},
		{
			name: "generic",
			src:  "package p\n\n//vtable:generate\ntype T[X any] struct{ F func(X) }\n",
			code: diagnostic.CodeUnsupported,
		},
		{
			name: "bad option",
			src:  "package p\n\n//vtable:generate convention=stdcall\ntype T struct{}\n",
			code: diagnostic.CodeBadOption,
		},
		{
			name: "member directive on type",
			src:  "package p\n\n//vtable:generate\n//vtable:offset 1\ntype T struct{}\n",
			code: diagnostic.CodeUnknownDirective,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diagErr := parseErr(t, tt.src)
			assert.True(t, diagErr.Has(tt.code), "want %s in %v", tt.code, diagErr)
		})
	}
}

func TestParseSource_SyntaxError(t *testing.T) {
	_, err := ParseSource("broken.go", "package p\ntype T struct {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse error")
}
