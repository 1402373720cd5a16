// Package decl parses vtable declarations out of Go source.
//
// A declaration is a struct type whose doc comment carries the
// //vtable:generate marker. Its fields are classified by type shape:
// a bare func literal type is a slot member (one dispatch table entry),
// anything else is a data member reproduced verbatim in the emitted record.
//
// Slot members may carry directives as comment lines:
//
//	//vtable:offset N   set the slot cursor to N
//	//vtable:skip D     move the slot cursor by D (may be negative)
//	//vtable:check N    assert the slot cursor equals N
//
// Key types:
//   - Declaration: the annotated struct, its options and ordered members
//   - Member: a data or slot member with its directives
//   - Directive: one parsed //vtable: directive
package decl
