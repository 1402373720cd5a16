// Package math mirrors the MathEngine object of libbasic: a word pointing
// at a two-entry table of {add, add2} followed by one int32 of state.
package math
