//go:build vtablegen

//go:generate go run vtable-generator/cmd/vtable-generator gen $GOFILE

package inherit

// Pug is a Pug allocated by getPug. Its table holds the Pet and Dog
// entries first, then the virtuals Pug adds.
//
//vtable:generate convention=native
type Pug struct {
	Label *byte
	Years int32

	// Name is inherited from Pet.
	//vtable:offset 0
	Name func() string

	// Speak is inherited from Dog.
	//vtable:offset 1
	Speak func() string

	// Age is declared by Pug itself.
	Age func() int32
}
