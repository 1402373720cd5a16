//go:build vtablegen

package pet

import (
	"unsafe"
)

// Pug mirrors the Pug class of libinherit.
//
//vtable:generate
type Pug struct {
	Name unsafe.Pointer // const char*
	Age  int32

	//vtable:offset 0
	GetName func() unsafe.Pointer

	// Speak is declared by Dog.
	//vtable:offset 1
	Speak func() unsafe.Pointer

	GetAge func() int32
}

// Plain is not annotated and must be ignored.
type Plain struct {
	A func()
}
