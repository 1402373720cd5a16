//go:build vtablegen

package widget

import "unsafe"

// Inner is held by value.
type Inner struct {
	ID    uint32
	Label string
}

//vtable:generate
type Widget struct {
	Handle unsafe.Pointer
	Name   string
	Flags  uint8
	Inner  Inner
	Items  []int32
	Pad    [2]float64

	Draw func(x, y int32) bool
}
