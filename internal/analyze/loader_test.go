package analyze

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtable-generator/internal/decl"
	"vtable-generator/internal/diagnostic"
	"vtable-generator/internal/plan"
)

func resolveFile(t *testing.T, filename string) *plan.ResolvedDeclaration {
	t.Helper()

	decls, err := decl.ParseFile(filename)
	require.NoError(t, err)
	require.Len(t, decls, 1)

	resolved, err := plan.Resolve(decls[0])
	require.NoError(t, err)

	return resolved
}

func TestAnalyzer_Analyze_Math(t *testing.T) {
	resolved := resolveFile(t, "../../example/math/math_decl.go")

	layout, diags, err := NewAnalyzer("amd64").Analyze(resolved)
	require.NoError(t, err)
	assert.False(t, diags.HasErrors())
	assert.Empty(t, diags.Warnings)

	assert.Equal(t, "Math", layout.Decl)
	assert.Equal(t, "vtable-generator/example/math", layout.PkgPath)
	assert.Equal(t, int64(16), layout.Size)
	assert.Equal(t, int64(8), layout.Align)

	require.Len(t, layout.Fields, 2)

	table := layout.Fields[0]
	assert.True(t, table.Table)
	assert.Equal(t, "vtable", table.Name)
	assert.Equal(t, "unsafe.Pointer", table.Type)
	assert.Equal(t, TypeKindPointer, table.Kind)
	assert.Equal(t, int64(0), table.Offset)
	assert.Equal(t, int64(8), table.Size)

	internal := layout.Field("Internal")
	require.NotNil(t, internal)
	assert.False(t, internal.Table)
	assert.Equal(t, "int32", internal.Type)
	assert.Equal(t, int64(8), internal.Offset)
	assert.Equal(t, int64(4), internal.Size)
	assert.Equal(t, int64(12), internal.End())

	assert.Nil(t, layout.Field("Add"), "slot members take no record space")
}

func TestAnalyzer_Analyze_32Bit(t *testing.T) {
	resolved := resolveFile(t, "../../example/math/math_decl.go")

	layout, _, err := NewAnalyzer("386").Analyze(resolved)
	require.NoError(t, err)

	assert.Equal(t, "386", layout.Arch)
	assert.Equal(t, int64(8), layout.Size)
	assert.Equal(t, int64(4), layout.Field("Internal").Offset)
}

func TestAnalyzer_Analyze_Widget(t *testing.T) {
	resolved := resolveFile(t, "testdata/widget/widget.go")

	layout, diags, err := NewAnalyzer("amd64").Analyze(resolved)
	require.NoError(t, err)

	offsets := make(map[string]int64)
	for _, f := range layout.Fields {
		offsets[f.Name] = f.Offset
	}

	assert.Equal(t, map[string]int64{
		"vtable": 0,
		"Handle": 8,
		"Name":   16,
		"Flags":  32,
		"Inner":  40,
		"Items":  64,
		"Pad":    88,
	}, offsets)
	assert.Equal(t, int64(104), layout.Size)

	assert.Equal(t, TypeKindString, layout.Field("Name").Kind)
	assert.Equal(t, TypeKindStruct, layout.Field("Inner").Kind)
	assert.Equal(t, "Inner", layout.Field("Inner").Type)
	assert.Equal(t, "[2]float64", layout.Field("Pad").Type)

	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 3)

	var messages []string
	for _, w := range diags.Warnings {
		assert.Equal(t, diagnostic.CodeLayout, w.Code)
		assert.Equal(t, "Widget", w.Decl)
		messages = append(messages, w.Message)
	}

	assert.Contains(t, messages[0], "Widget.Name is a string")
	assert.Contains(t, messages[1], "Widget.Inner.Label is a string")
	assert.Contains(t, messages[2], "Widget.Items is a slice")
}

func TestAnalyzer_Analyze_MissingType(t *testing.T) {
	resolved := resolveFile(t, "testdata/widget/widget.go")
	resolved.Decl.Name = "Gadget"

	_, _, err := NewAnalyzer("").Analyze(resolved)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type Gadget not found")
}

func TestAnalyzer_Analyze_SignatureMismatch(t *testing.T) {
	resolved := resolveFile(t, "testdata/widget/widget.go")
	resolved.Slots[0].Member.Params = resolved.Slots[0].Member.Params[:1]

	_, _, err := NewAnalyzer("").Analyze(resolved)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Widget.Draw: type-checked as")
}

func TestAnalyzer_LoadPackage_Cached(t *testing.T) {
	analyzer := NewAnalyzer("")

	first, err := analyzer.LoadPackage("testdata/widget")
	require.NoError(t, err)

	second, err := analyzer.LoadPackage("./testdata/widget/")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "widget", first.Name)
}

func TestAnalyzer_LoadPackage_Missing(t *testing.T) {
	_, err := NewAnalyzer("").LoadPackage("testdata/nonexistent")
	require.Error(t, err)
}

func TestTypeKind(t *testing.T) {
	tests := []struct {
		typ  types.Type
		kind TypeKind
		safe bool
	}{
		{types.Typ[types.Int32], TypeKindBasic, true},
		{types.Typ[types.String], TypeKindString, false},
		{types.Typ[types.UnsafePointer], TypeKindPointer, true},
		{types.Typ[types.Uintptr], TypeKindPointer, true},
		{types.NewPointer(types.Typ[types.Int8]), TypeKindPointer, true},
		{types.NewSlice(types.Typ[types.Byte]), TypeKindSlice, false},
		{types.NewArray(types.Typ[types.Byte], 4), TypeKindArray, true},
		{types.NewMap(types.Typ[types.Int], types.Typ[types.Int]), TypeKindMap, false},
		{types.NewChan(types.SendRecv, types.Typ[types.Int]), TypeKindChan, false},
		{types.NewSignatureType(nil, nil, nil, nil, nil, false), TypeKindFunc, false},
		{types.NewInterfaceType(nil, nil), TypeKindInterface, false},
		{types.NewStruct(nil, nil), TypeKindStruct, true},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			kind := kindOf(tt.typ)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.safe, kind.ForeignSafe())
			assert.NotEqual(t, "unknown", kind.String())
		})
	}
}

func TestTypePath(t *testing.T) {
	p1 := NewTypePath("Widget")
	assert.Equal(t, "Widget", p1.String())

	p2 := p1.Field("Inner")
	assert.Equal(t, "Widget.Inner", p2.String())

	p3 := p2.Field("Buf").Elem()
	assert.Equal(t, "Widget.Inner.Buf[]", p3.String())

	// Paths are immutable.
	assert.Equal(t, "Widget.Inner", p2.String())
}
