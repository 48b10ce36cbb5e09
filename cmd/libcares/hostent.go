package main

/*
#include <stdlib.h>
#include <netdb.h>
*/
import "C"

import (
	"unsafe"

	"github.com/caresgo/caresgo/internal/cabi"
	"github.com/caresgo/caresgo/internal/hostent"
)

// buildCHostent C-allocates a struct hostent holding the same data as
// h, ready to hand back across the cgo boundary. The caller owns the
// result and must eventually release it with freeCHostent (reached,
// for query results, through ares_free_hostent).
func buildCHostent(h *hostent.Hostent) *C.struct_hostent {
	ptr := C.malloc(C.size_t(unsafe.Sizeof(C.struct_hostent{})))
	che := (*C.struct_hostent)(ptr)
	*che = C.struct_hostent{}

	che.h_name = C.CString(h.Name)

	aliasPtrs := make([]*C.char, len(h.Aliases))
	for i, a := range h.Aliases {
		aliasPtrs[i] = C.CString(a)
	}
	che.h_aliases = (**C.char)(cabi.BuildNullTermArray(aliasPtrs, nil))

	che.h_addrtype = C.int(h.AddrType)
	che.h_length = C.int(h.Length)

	addrPtrs := make([]unsafe.Pointer, len(h.Addrs))
	for i, a := range h.Addrs {
		addrPtrs[i] = C.CBytes(a)
	}
	che.h_addr_list = (**C.char)(cabi.BuildNullTermArray(addrPtrs, nil))

	return che
}

// freeCHostent reclaims a struct hostent built by buildCHostent: both
// element arrays and every string/address they hold, then the name,
// then the container itself.
func freeCHostent(che *C.struct_hostent) {
	if che == nil {
		return
	}

	for _, p := range cabi.WalkNullTermArray[unsafe.Pointer](unsafe.Pointer(che.h_aliases), nil) {
		C.free(p)
	}
	cabi.FreeNullTermArray(unsafe.Pointer(che.h_aliases))

	for _, p := range cabi.WalkNullTermArray[unsafe.Pointer](unsafe.Pointer(che.h_addr_list), nil) {
		C.free(p)
	}
	cabi.FreeNullTermArray(unsafe.Pointer(che.h_addr_list))

	C.free(unsafe.Pointer(che.h_name))
	C.free(unsafe.Pointer(che))
}

//export ares_free_hostent
func ares_free_hostent(che *C.struct_hostent) {
	freeCHostent(che)
}
