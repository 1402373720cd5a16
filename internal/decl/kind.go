package decl

//go:generate go tool stringer -type=MemberKind,DirectiveKind -linecomment -output=kind_string.go

// MemberKind classifies a declaration member.
type MemberKind int

const (
	MemberData MemberKind = iota // data
	MemberSlot                   // slot
)

// DirectiveKind is the kind of a //vtable: member directive.
type DirectiveKind int

const (
	DirectiveOffset DirectiveKind = iota // offset
	DirectiveCheck                       // check
	DirectiveSkip                        // skip
)

// directiveKinds maps directive spellings to kinds.
var directiveKinds = map[string]DirectiveKind{
	"offset": DirectiveOffset,
	"check":  DirectiveCheck,
	"skip":   DirectiveSkip,
}

// Convention selects how accessors invoke a table entry.
type Convention string

const (
	// ConventionGo treats each table entry as a Go func value.
	ConventionGo Convention = "go"
	// ConventionNative treats each table entry as a C function pointer
	// and calls it through purego.
	ConventionNative Convention = "native"
)
