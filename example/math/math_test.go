//go:build !vtablegen

package math

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entry returns the word a func value occupies in a dispatch table.
func entry[F any](f F) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&f))
}

// newMath builds the object the way libbasic's getMath does.
func newMath(internal int32) (*Math, []unsafe.Pointer) {
	table := []unsafe.Pointer{
		entry(func(_ *Math, a, b int32) int32 { return a + b }),
		entry(func(self *Math, a, b int32) int32 { return self.Internal + a + b }),
	}

	return &Math{vtable: unsafe.Pointer(&table[0]), Internal: internal}, table
}

func TestMath_Dispatch(t *testing.T) {
	m, _ := newMath(10)

	assert.Equal(t, int32(10), m.Add(5, 5))
	assert.Equal(t, int32(20), m.Add2(5, 5))

	m.Internal = -3
	assert.Equal(t, int32(7), m.Add2(5, 5))
}

func TestMath_Layout(t *testing.T) {
	var m Math

	assert.Equal(t, uintptr(0), unsafe.Offsetof(m.vtable))
	assert.Equal(t, unsafe.Sizeof(uintptr(0)), unsafe.Offsetof(m.Internal))
}

func TestMath_Entries(t *testing.T) {
	m, table := newMath(0)
	require.Len(t, table, 2)

	assert.Equal(t, unsafe.Pointer(&table[0]), m.vtableEntry(0))
	assert.Equal(t, unsafe.Pointer(&table[1]), m.vtableEntry(1))
}
