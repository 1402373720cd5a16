//go:build vtablegen

//go:generate go run vtable-generator/cmd/vtable-generator gen $GOFILE

package math

// Math is the engine interface exported by libbasic.
//
//vtable:generate
type Math struct {
	// Internal is the constructor argument; add2 adds it to its result.
	Internal int32

	Add func(a, b int32) int32
	//vtable:offset 1
	Add2 func(a, b int32) int32
}
