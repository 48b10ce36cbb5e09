// Package cabi implements the small set of C-ABI building blocks the
// exported surface needs to hand back data a C caller owns and must
// explicitly free: null-terminated arrays, singly-linked chains, and a
// tagged envelope that recovers its own address from a pointer to its
// payload.
//
// Every allocation in this package uses C.malloc so the returned memory
// is ordinary C heap memory, not Go heap memory the garbage collector
// could move or reclaim once the call returns.
package cabi

/*
#include <stdlib.h>
*/
import "C"
import "unsafe"

// BuildNullTermArray C-allocates a contiguous array of len(elems)+1
// values of type T, copies elems into it, and appends sentinel as the
// terminator — the layout ares_free_string_list-style helpers expect.
func BuildNullTermArray[T comparable](elems []T, sentinel T) unsafe.Pointer {
	var zero T
	size := unsafe.Sizeof(zero)
	n := len(elems)

	buf := C.malloc(C.size_t(n+1) * C.size_t(size))
	base := uintptr(buf)
	for i, e := range elems {
		*(*T)(unsafe.Pointer(base + uintptr(i)*size)) = e
	}
	*(*T)(unsafe.Pointer(base + uintptr(n)*size)) = sentinel
	return buf
}

// WalkNullTermArray reads a null-terminated C array back into a Go
// slice without freeing it. A nil ptr yields a nil slice.
func WalkNullTermArray[T comparable](ptr unsafe.Pointer, sentinel T) []T {
	if ptr == nil {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	base := uintptr(ptr)

	var out []T
	for i := 0; ; i++ {
		v := *(*T)(unsafe.Pointer(base + uintptr(i)*size))
		if v == sentinel {
			break
		}
		out = append(out, v)
	}
	return out
}

// FreeNullTermArray releases memory returned by BuildNullTermArray. It
// does not inspect the elements, so pointer elements (e.g. C strings)
// must already have been freed individually.
func FreeNullTermArray(ptr unsafe.Pointer) {
	C.free(ptr)
}
