package main

/*
#include <stdlib.h>
#include "cares_types.h"
*/
import "C"

import (
	"syscall"
	"unsafe"

	"github.com/caresgo/caresgo/internal/cabi"
	"github.com/caresgo/caresgo/internal/serverscsv"
)

// newAddrPortNode copies s into a freshly C-allocated ares_addr_port_node
// with next left nil.
func newAddrPortNode(s serverscsv.Server) *C.ares_addr_port_node {
	ptr := C.malloc(C.size_t(unsafe.Sizeof(C.ares_addr_port_node{})))
	node := (*C.ares_addr_port_node)(ptr)
	*node = C.ares_addr_port_node{}

	port := s.Port
	if port == 0 {
		port = serverscsv.DefaultPort
	}
	node.udp_port = C.int(port)
	node.tcp_port = C.int(port)

	if v4 := s.Addr.To4(); v4 != nil {
		node.family = C.int(syscall.AF_INET)
		dst := (*[4]byte)(unsafe.Pointer(&node.addr))
		copy(dst[:], v4)
	} else {
		node.family = C.int(syscall.AF_INET6)
		dst := (*[16]byte)(unsafe.Pointer(&node.addr))
		copy(dst[:], s.Addr.To16())
	}
	return node
}

// chainAddrPortNodesEnveloped builds the full ares_addr_port_node chain
// for servers and wraps its head in an envelope tagged tagAddrPortChain,
// so the chain can be released through ares_free_data exactly like the
// mx/txt reply lists.
func chainAddrPortNodesEnveloped(servers []serverscsv.Server) *C.ares_addr_port_node {
	var rest *C.ares_addr_port_node
	for i := len(servers) - 1; i >= 1; i-- {
		n := newAddrPortNode(servers[i])
		n.next = rest
		rest = n
	}

	head := newAddrPortNode(servers[0])
	head.next = rest
	envPtr := cabi.NewEnvelope(tagAddrPortChain, *head)
	C.free(unsafe.Pointer(head)) // contents already copied into the envelope
	return (*C.ares_addr_port_node)(envPtr)
}

// freeAddrPortNodes walks and frees a plain (non-enveloped) chain tail —
// used by ares_free_data once it has stripped the enveloped head.
func freeAddrPortNodes(head *C.ares_addr_port_node) {
	for head != nil {
		next := head.next
		C.free(unsafe.Pointer(head))
		head = next
	}
}
