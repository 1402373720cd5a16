// Package native binds MyEngine from testdata/basic.cpp through its C++
// vtable. Slot entries are C function pointers called with purego.
package native
