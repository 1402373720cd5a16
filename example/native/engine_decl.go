//go:build vtablegen

//go:generate go run vtable-generator/cmd/vtable-generator gen $GOFILE

package native

// Engine is a MyEngine allocated by getMath. Its vtable holds C++ member
// functions, which take this as their first argument.
//
//vtable:generate convention=native
type Engine struct {
	Mynum int32

	Add  func(x, y int32) int32
	Add2 func(x, y int32) int32
}
