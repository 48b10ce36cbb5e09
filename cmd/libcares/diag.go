package main

/*
#include "cares_types.h"
*/
import "C"

import (
	"sync"

	"github.com/caresgo/caresgo/internal/cares"
)

// strerrorTable holds one process-lifetime C string per error code the
// first time it's requested, since ares_strerror returns a constant
// string the caller must never free.
var (
	strerrorMu    sync.Mutex
	strerrorTable = map[C.int]*C.char{}
)

//export ares_strerror
func ares_strerror(code C.int) *C.char {
	strerrorMu.Lock()
	defer strerrorMu.Unlock()

	if s, ok := strerrorTable[code]; ok {
		return s
	}
	s := C.CString(cares.Strerror(int(code)))
	strerrorTable[code] = s
	return s
}

var versionString = C.CString(cares.VersionStr)

//export ares_version
func ares_version(out *C.int) *C.char {
	if out != nil {
		*out = C.int(cares.VersionInt)
	}
	return versionString
}
