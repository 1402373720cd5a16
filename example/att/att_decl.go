//go:build vtablegen

//go:generate go run vtable-generator/cmd/vtable-generator gen $GOFILE

package att

// Bar leaves entries 0 and 2 of its table to the foreign side.
//
//vtable:generate receiver=b
type Bar struct {
	//vtable:offset(1)
	First func() int32

	//vtable:skip(1)
	//vtable:check(3)
	// Third scales its argument by the object's factor.
	Third func(i int32) int32

	Factor int32 // set by the foreign constructor
}
