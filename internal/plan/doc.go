// Package plan resolves the dispatch table slot of every slot member of a
// declaration, producing the ResolvedDeclaration consumed by code generation.
//
// Resolution walks slot members in declaration order with a single cursor
// that starts at 0. For each member:
//  1. offset(n) sets the cursor to n
//  2. skip(d) moves the cursor by d
//  3. check(n) asserts the cursor equals n
//  4. the cursor is assigned as the member's slot, then advanced by 1
//
// Data members never occupy slots. Any failure aborts resolution of the
// declaration with a diagnostic naming the member and directive.
package plan
