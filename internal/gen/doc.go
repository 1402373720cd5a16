// Package gen provides deterministic Go code generation for vtable
// declarations.
//
// Generation approach uses text/template + golang.org/x/tools/imports for
// readable code with exactly the imports it needs.
//
// For each resolved declaration one file is emitted containing:
//   - the record type: a host-layout struct whose first field is the
//     dispatch table pointer, followed by the data members verbatim
//   - a single slot address helper, the only pointer arithmetic in the file
//   - one accessor method per slot member that reads its table entry and
//     calls it with the receiver prepended to the declared arguments
package gen
