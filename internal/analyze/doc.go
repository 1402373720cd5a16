// Package analyze type-checks vtable declarations and computes the memory
// layout of the records generated from them.
//
// Declaration files are only compiled with the vtablegen build tag, so the
// package is loaded with golang.org/x/tools/go/packages under that tag. The
// layout is the one gc gives the emitted record: the table pointer at offset
// 0 followed by the data members in declaration order.
//
// Key types:
//   - Analyzer: loads and caches packages, produces layouts
//   - Layout: size, alignment and per-field offsets of a record
//   - TypeKind: coarse classification of a data member's type
package analyze
