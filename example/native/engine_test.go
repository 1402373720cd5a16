//go:build !vtablegen && (darwin || linux || freebsd)

package native

import (
	"os"
	"testing"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// libEnv names a shared library built from testdata/basic.cpp.
const libEnv = "VTABLEGEN_NATIVE_LIB"

func openBasic(t *testing.T) (getMath func(int32) unsafe.Pointer, freeMath func(unsafe.Pointer)) {
	t.Helper()

	path := os.Getenv(libEnv)
	if path == "" {
		t.Skipf("%s not set; build testdata/basic.cpp to run", libEnv)
	}

	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	require.NoError(t, err)

	t.Cleanup(func() { _ = purego.Dlclose(lib) })

	purego.RegisterLibFunc(&getMath, lib, "getMath")
	purego.RegisterLibFunc(&freeMath, lib, "freeMath")

	return getMath, freeMath
}

func TestEngine_Dispatch(t *testing.T) {
	getMath, freeMath := openBasic(t)

	ptr := getMath(10)
	require.NotNil(t, ptr)

	defer freeMath(ptr)

	e := (*Engine)(ptr)

	assert.Equal(t, int32(10), e.Mynum)
	assert.Equal(t, int32(10), e.Add(5, 5))
	assert.Equal(t, int32(20), e.Add2(5, 5))
}

func TestEngine_Layout(t *testing.T) {
	var e Engine

	assert.Equal(t, uintptr(0), unsafe.Offsetof(e.vtable))
	assert.Equal(t, unsafe.Sizeof(uintptr(0)), unsafe.Offsetof(e.Mynum))
}
