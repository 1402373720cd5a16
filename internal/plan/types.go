package plan

import (
	"vtable-generator/internal/decl"
	"vtable-generator/internal/diagnostic"
)

// ResolvedDeclaration is the final output of resolution for one declaration.
// It contains everything needed for code generation.
type ResolvedDeclaration struct {
	// Decl is the parsed declaration.
	Decl *decl.Declaration
	// Slots lists slot members with their resolved table index, in
	// declaration order.
	Slots []ResolvedSlot
	// Data lists data members in declaration order.
	Data []*decl.Member
	// Diagnostics contains warnings and notes from resolution.
	Diagnostics diagnostic.Diagnostics
}

// ResolvedSlot is a slot member bound to its table index.
type ResolvedSlot struct {
	Member *decl.Member
	// Index is the non-negative table index.
	Index int
	// Aliases names other members resolved to the same index.
	Aliases []string
}

// TableSize returns the minimum number of entries the foreign table must
// hold: the highest resolved index plus one.
func (r *ResolvedDeclaration) TableSize() int {
	size := 0
	for _, s := range r.Slots {
		size = max(size, s.Index+1)
	}

	return size
}

// Slot returns the resolved slot of the named member.
func (r *ResolvedDeclaration) Slot(name string) (ResolvedSlot, bool) {
	for _, s := range r.Slots {
		if s.Member.Name == name {
			return s, true
		}
	}

	return ResolvedSlot{}, false
}

// Indexes returns member name to slot index.
func (r *ResolvedDeclaration) Indexes() map[string]int {
	out := make(map[string]int, len(r.Slots))
	for _, s := range r.Slots {
		out[s.Member.Name] = s.Index
	}

	return out
}
