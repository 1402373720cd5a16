// Package diagnostic provides structured errors, warnings and notes for
// the vtable generator.
//
// Every generation-time failure is reported as a Diagnostic naming the
// declaration, the member and the directive involved, with expected and
// actual values where a comparison failed:
//   - malformed directive literals
//   - duplicate or conflicting directives on one member
//   - check assertions that do not match the slot cursor
//   - skips that drive the slot cursor below zero
//   - directives attached to data members
package diagnostic
