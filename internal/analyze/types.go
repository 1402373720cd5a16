package analyze

import (
	"go/types"
	"strings"
)

// TypeKind represents the kind of a data member's type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int32, float64, bool, ...
	TypeKindString             // string
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer or unsafe.Pointer
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindChan               // channel type
	TypeKindFunc               // func value
	TypeKindInterface          // interface value
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindString:
		return "string"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindChan:
		return "chan"
	case TypeKindFunc:
		return "func"
	case TypeKindInterface:
		return "interface"
	default:
		return "unknown"
	}
}

// ForeignSafe reports whether values of this kind can be shared with a
// foreign allocator without holding Go runtime state.
func (k TypeKind) ForeignSafe() bool {
	switch k {
	case TypeKindBasic, TypeKindStruct, TypeKindPointer, TypeKindArray:
		return true
	default:
		return false
	}
}

// kindOf classifies t by its underlying type.
func kindOf(t types.Type) TypeKind {
	switch u := t.Underlying().(type) {
	case *types.Basic:
		switch {
		case u.Info()&types.IsString != 0:
			return TypeKindString
		case u.Kind() == types.UnsafePointer, u.Kind() == types.Uintptr:
			return TypeKindPointer
		default:
			return TypeKindBasic
		}
	case *types.Struct:
		return TypeKindStruct
	case *types.Pointer:
		return TypeKindPointer
	case *types.Slice:
		return TypeKindSlice
	case *types.Array:
		return TypeKindArray
	case *types.Map:
		return TypeKindMap
	case *types.Chan:
		return TypeKindChan
	case *types.Signature:
		return TypeKindFunc
	case *types.Interface:
		return TypeKindInterface
	default:
		return TypeKindUnknown
	}
}

// Layout is the memory layout of a generated record.
type Layout struct {
	Decl    string        // declaration name
	PkgPath string        // import path of the declaring package
	Arch    string        // GOARCH the sizes were computed for
	Size    int64         // record size in bytes
	Align   int64         // record alignment in bytes
	Fields  []FieldLayout // table pointer first, then data members
}

// Field returns the field with the given name, or nil.
func (l *Layout) Field(name string) *FieldLayout {
	for i := range l.Fields {
		if l.Fields[i].Name == name {
			return &l.Fields[i]
		}
	}

	return nil
}

// FieldLayout is the placement of one record field.
type FieldLayout struct {
	Name   string
	Type   string // type as written relative to the declaring package
	Kind   TypeKind
	Offset int64
	Size   int64
	Align  int64
	Table  bool // the dispatch table pointer
}

// End returns the offset one past the field's last byte.
func (f FieldLayout) End() int64 {
	return f.Offset + f.Size
}

// TypePath builds a readable path to a nested field for diagnostics:
//   - "Widget.Name" for a data member
//   - "Widget.Inner.Name" for a field of a struct member
//   - "Widget.Items[]" for an array element
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Elem appends an element indicator "[]" to the path.
func (p *TypePath) Elem() *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{"[]"}}
	}

	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] += "[]"

	return &TypePath{parts: newParts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}
