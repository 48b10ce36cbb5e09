package main

/*
#include <stdlib.h>
#include "cares_types.h"
*/
import "C"

import (
	"net"
	"syscall"
	"testing"
	"unsafe"

	"github.com/caresgo/caresgo/internal/cares"
	"github.com/caresgo/caresgo/internal/serverscsv"
)

func TestChainAddrPortNodesEnvelopedRoundTrip(t *testing.T) {
	servers := []serverscsv.Server{
		{Addr: net.ParseIP("8.8.8.8"), Port: 53},
		{Addr: net.ParseIP("1.1.1.1")},
	}

	head := chainAddrPortNodesEnveloped(servers)
	defer ares_free_data(unsafe.Pointer(head))

	if int(head.family) != syscall.AF_INET {
		t.Fatalf("family = %d, want AF_INET", head.family)
	}
	got := (*[4]byte)(unsafe.Pointer(&head.addr))[:]
	if net.IP(got).String() != "8.8.8.8" {
		t.Errorf("first addr = %v", net.IP(got))
	}
	if head.udp_port != 53 {
		t.Errorf("udp_port = %d, want 53", head.udp_port)
	}

	if head.next == nil {
		t.Fatal("expected a second node")
	}
	got2 := (*[4]byte)(unsafe.Pointer(&head.next.addr))[:]
	if net.IP(got2).String() != "1.1.1.1" {
		t.Errorf("second addr = %v", net.IP(got2))
	}
	if int(head.next.udp_port) != serverscsv.DefaultPort {
		t.Errorf("udp_port = %d, want default %d", head.next.udp_port, serverscsv.DefaultPort)
	}
	if head.next.next != nil {
		t.Error("expected exactly two nodes")
	}

	if tag := peekEnvelopeTag(unsafe.Pointer(head)); tag != tagAddrPortChain {
		t.Errorf("tag = %d, want %d", tag, tagAddrPortChain)
	}
}

func TestAresSetServersParsesAddrNodeChain(t *testing.T) {
	var chPtr unsafe.Pointer
	if status := ares_init(&chPtr); int(status) != cares.SUCCESS {
		t.Fatalf("ares_init status = %d", status)
	}
	defer ares_destroy(chPtr)

	node := (*C.ares_addr_node)(C.malloc(C.size_t(unsafe.Sizeof(C.ares_addr_node{}))))
	defer C.free(unsafe.Pointer(node))
	*node = C.ares_addr_node{family: C.int(syscall.AF_INET)}
	dst := (*[4]byte)(unsafe.Pointer(&node.addr))
	copy(dst[:], net.ParseIP("9.9.9.9").To4())

	if status := ares_set_servers(chPtr, node); int(status) != cares.SUCCESS {
		t.Fatalf("ares_set_servers status = %d", status)
	}

	ch := resolveChannel(chPtr)
	servers := ch.Servers()
	if len(servers) != 1 || servers[0].Addr.String() != "9.9.9.9" {
		t.Errorf("servers = %v", servers)
	}
}
