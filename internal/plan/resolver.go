package plan

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"vtable-generator/internal/decl"
	"vtable-generator/internal/diagnostic"
)

// MaxSlot is the highest slot index a member may resolve to. The cursor
// after it still fits in 32 bits.
const MaxSlot = math.MaxInt32 - 1

// ResolutionConfig holds configuration for slot resolution.
type ResolutionConfig struct {
	// RejectAliases turns two members sharing one slot into an error.
	// By default aliasing is permitted and reported as an info diagnostic.
	RejectAliases bool
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{}
}

// Resolver assigns table slots to slot members.
type Resolver struct {
	config ResolutionConfig
}

// NewResolver creates a new Resolver.
func NewResolver(config ResolutionConfig) *Resolver {
	return &Resolver{config: config}
}

// Resolve resolves a single declaration with the default configuration.
func Resolve(d *decl.Declaration) (*ResolvedDeclaration, error) {
	return NewResolver(DefaultConfig()).Resolve(d)
}

// ResolveAll resolves every declaration. If any fails, the returned error is a
// *diagnostic.Error carrying the failures of all declarations and no
// resolved declarations are returned.
func (r *Resolver) ResolveAll(decls []*decl.Declaration) ([]*ResolvedDeclaration, error) {
	var (
		out   []*ResolvedDeclaration
		diags diagnostic.Diagnostics
	)

	for _, d := range decls {
		resolved, err := r.resolve(d)
		diags.Merge(resolved.Diagnostics)

		if err != nil {
			continue
		}

		out = append(out, resolved)
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// Resolve runs slot resolution for one declaration. On failure the error is
// a *diagnostic.Error.
func (r *Resolver) Resolve(d *decl.Declaration) (*ResolvedDeclaration, error) {
	resolved, err := r.resolve(d)
	if err != nil {
		return nil, err
	}

	return resolved, nil
}

func (r *Resolver) resolve(d *decl.Declaration) (*ResolvedDeclaration, error) {
	resolved := &ResolvedDeclaration{Decl: d}

	cursor := 0

	for _, m := range d.Members {
		if m.Kind == decl.MemberData {
			resolved.Data = append(resolved.Data, m)
			continue
		}

		index, ok := r.resolveMember(d, m, cursor, &resolved.Diagnostics)
		if !ok {
			// The cursor is meaningless past a failed member.
			return resolved, resolved.Diagnostics.Err()
		}

		Logger().Debug("resolved slot",
			zap.String("decl", d.Name),
			zap.String("member", m.Name),
			zap.Int("slot", index))

		resolved.Slots = append(resolved.Slots, ResolvedSlot{Member: m, Index: index})
		cursor = index + 1
	}

	r.markAliases(resolved)

	return resolved, resolved.Diagnostics.Err()
}

// resolveMember applies the member's directives to the cursor and returns
// the slot it lands on. Directives apply as offset, then skip, then check,
// independent of their order in the source.
func (r *Resolver) resolveMember(d *decl.Declaration, m *decl.Member, cursor int, diags *diagnostic.Diagnostics) (int, bool) {
	fail := func(code diagnostic.Code, dir decl.Directive, msg, expected, actual string) {
		diags.AddError(diagnostic.Diagnostic{
			Code:      code,
			Message:   msg,
			Pos:       dir.Pos,
			Decl:      d.Name,
			Member:    m.Name,
			Directive: dir.String(),
			Expected:  expected,
			Actual:    actual,
		})
	}

	seen := make(map[decl.DirectiveKind]decl.Directive, len(m.Directives))
	ok := true

	for _, dir := range m.Directives {
		if first, dup := seen[dir.Kind]; dup {
			fail(diagnostic.CodeDuplicate, dir,
				fmt.Sprintf("%s may appear at most once per member", dir.Kind),
				"one "+dir.Kind.String(), first.String()+" and "+dir.String())

			ok = false

			continue
		}

		seen[dir.Kind] = dir
	}

	offset, hasOffset := seen[decl.DirectiveOffset]
	check, hasCheck := seen[decl.DirectiveCheck]
	skip, hasSkip := seen[decl.DirectiveSkip]

	if hasOffset && hasCheck {
		fail(diagnostic.CodeOffsetCheck, check,
			"offset and check are mutually exclusive on one member", "", "")

		ok = false
	}

	if !ok {
		return 0, false
	}

	// outOfRange reports a slot past MaxSlot, reached through dir if any.
	outOfRange := func(dir *decl.Directive, actual string) {
		diag := diagnostic.Diagnostic{
			Code:     diagnostic.CodeSlotRange,
			Message:  "slot index is out of range",
			Pos:      m.Pos,
			Decl:     d.Name,
			Member:   m.Name,
			Expected: "<= " + strconv.Itoa(MaxSlot),
			Actual:   actual,
		}

		if dir != nil {
			diag.Pos = dir.Pos
			diag.Directive = dir.String()
		}

		diags.AddError(diag)
	}

	next := int64(cursor)

	if hasOffset {
		if offset.Value < 0 {
			fail(diagnostic.CodeNegativeOffset, offset,
				"slot offsets cannot be negative", ">= 0", strconv.Itoa(offset.Value))

			return 0, false
		}

		if offset.Value > MaxSlot {
			outOfRange(&offset, strconv.Itoa(offset.Value))
			return 0, false
		}

		next = int64(offset.Value)
	}

	if hasSkip {
		// next is at most MaxSlot+1 here, so bounding skip keeps the sum exact.
		if skip.Value > MaxSlot {
			outOfRange(&skip, fmt.Sprintf("%d + %d", next, skip.Value))
			return 0, false
		}

		next += int64(skip.Value)

		if next < 0 {
			fail(diagnostic.CodeNegativeCursor, skip,
				"skip drives the slot cursor below zero", "cursor >= 0", strconv.FormatInt(next, 10))

			return 0, false
		}

		if next > MaxSlot {
			outOfRange(&skip, strconv.FormatInt(next, 10))
			return 0, false
		}
	}

	if next > MaxSlot {
		outOfRange(nil, strconv.FormatInt(next, 10))
		return 0, false
	}

	if hasCheck && int64(check.Value) != next {
		fail(diagnostic.CodeCheckMismatch, check,
			"slot cursor does not match", strconv.Itoa(check.Value), strconv.FormatInt(next, 10))

		return 0, false
	}

	return int(next), true
}

// markAliases records members sharing a slot. Aliasing is legitimate (for
// example overload shims) unless the configuration rejects it.
func (r *Resolver) markAliases(resolved *ResolvedDeclaration) {
	bySlot := make(map[int][]string)
	for _, s := range resolved.Slots {
		bySlot[s.Index] = append(bySlot[s.Index], s.Member.Name)
	}

	for i := range resolved.Slots {
		s := &resolved.Slots[i]

		for _, name := range bySlot[s.Index] {
			if name != s.Member.Name {
				s.Aliases = append(s.Aliases, name)
			}
		}

		if len(s.Aliases) == 0 {
			continue
		}

		diag := diagnostic.Diagnostic{
			Code:    diagnostic.CodeAliasedSlot,
			Message: fmt.Sprintf("slot %d is shared with %v", s.Index, s.Aliases),
			Pos:     s.Member.Pos,
			Decl:    resolved.Decl.Name,
			Member:  s.Member.Name,
		}

		if r.config.RejectAliases {
			resolved.Diagnostics.AddError(diag)
		} else {
			resolved.Diagnostics.AddInfo(diag)
		}
	}
}
