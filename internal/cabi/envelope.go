package cabi

/*
#include <stdlib.h>
*/
import "C"
import "unsafe"

// Envelope wraps a C-owned payload with a leading tag so a disposal
// function given only a pointer to the payload (as ares_free_data is)
// can recover the envelope's own address and the type it was built
// with, without the caller ever seeing the tag.
type Envelope[T any] struct {
	Tag  uint8
	Data T
}

// NewEnvelope C-allocates an Envelope[T], sets tag and data, and
// returns a pointer to the *payload* — the address a C caller is
// actually handed back.
func NewEnvelope[T any](tag uint8, data T) unsafe.Pointer {
	size := unsafe.Sizeof(Envelope[T]{})
	ptr := C.malloc(C.size_t(size))
	env := (*Envelope[T])(ptr)
	env.Tag = tag
	env.Data = data
	return unsafe.Pointer(&env.Data)
}

// RestoreEnvelope recovers the *Envelope[T] that owns a payload pointer
// previously returned by NewEnvelope, by subtracting the Data field's
// offset within Envelope[T] from the given address.
func RestoreEnvelope[T any](dataPtr unsafe.Pointer) *Envelope[T] {
	var e Envelope[T]
	offset := unsafe.Offsetof(e.Data)
	return (*Envelope[T])(unsafe.Pointer(uintptr(dataPtr) - offset))
}

// FreeEnvelope restores the envelope owning dataPtr, runs release
// (to dispose any C memory owned by the payload itself, such as
// CStrings or a chained list of further payloads), and frees the
// envelope's backing allocation.
func FreeEnvelope[T any](dataPtr unsafe.Pointer, release func(*T)) {
	env := RestoreEnvelope[T](dataPtr)
	if release != nil {
		release(&env.Data)
	}
	C.free(unsafe.Pointer(env))
}
