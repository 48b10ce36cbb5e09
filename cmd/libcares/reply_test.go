package main

/*
#include "cares_types.h"
*/
import "C"

import (
	"testing"
	"unsafe"

	"github.com/caresgo/caresgo/internal/cares"
	"github.com/caresgo/caresgo/internal/wire"
)

func TestParseMXReplyRoundTrip(t *testing.T) {
	raw := buildAnswerFrame(t, wire.TypeMX, [][]byte{
		append([]byte{0, 10}, encodeRootName("mail1.example.com")...),
		append([]byte{0, 20}, encodeRootName("mail2.example.com")...),
	})
	abuf := (*C.uchar)(C.CBytes(raw))
	defer C.free(unsafe.Pointer(abuf))

	var out *C.ares_mx_reply
	status := ares_parse_mx_reply(abuf, C.int(len(raw)), &out)
	if status != C.int(cares.SUCCESS) {
		t.Fatalf("status = %d, want SUCCESS", status)
	}
	defer ares_free_data(unsafe.Pointer(out))

	if C.GoString(out.host) != "mail1.example.com" {
		t.Errorf("first host = %q", C.GoString(out.host))
	}
	if out.priority != 10 {
		t.Errorf("first priority = %d, want 10", out.priority)
	}
	if out.next == nil {
		t.Fatal("expected a second node")
	}
	if C.GoString(out.next.host) != "mail2.example.com" {
		t.Errorf("second host = %q", C.GoString(out.next.host))
	}
	if out.next.next != nil {
		t.Error("expected exactly two nodes")
	}
}

func TestParseMXReplyWithCompressedTarget(t *testing.T) {
	// The MX target name is a bare compression pointer back to the
	// question name at offset 12, rather than a self-contained name.
	// Resolving it requires the full message, not the isolated RData.
	raw := buildAnswerFrame(t, wire.TypeMX, [][]byte{
		{0, 10, 0xC0, 0x0C},
	})
	abuf := (*C.uchar)(C.CBytes(raw))
	defer C.free(unsafe.Pointer(abuf))

	var out *C.ares_mx_reply
	status := ares_parse_mx_reply(abuf, C.int(len(raw)), &out)
	if status != C.int(cares.SUCCESS) {
		t.Fatalf("status = %d, want SUCCESS", status)
	}
	defer ares_free_data(unsafe.Pointer(out))

	if C.GoString(out.host) != "example.com" {
		t.Errorf("host = %q, want %q", C.GoString(out.host), "example.com")
	}
	if out.priority != 10 {
		t.Errorf("priority = %d, want 10", out.priority)
	}
}

func TestParseTXTReplyRoundTrip(t *testing.T) {
	raw := buildAnswerFrame(t, wire.TypeTXT, [][]byte{txtRData("v=spf1 -all")})
	abuf := (*C.uchar)(C.CBytes(raw))
	defer C.free(unsafe.Pointer(abuf))

	var out *C.ares_txt_reply
	status := ares_parse_txt_reply(abuf, C.int(len(raw)), &out)
	if status != C.int(cares.SUCCESS) {
		t.Fatalf("status = %d, want SUCCESS", status)
	}
	defer ares_free_data(unsafe.Pointer(out))

	got := C.GoBytes(unsafe.Pointer(out.txt), C.int(out.length))
	if string(got) != "v=spf1 -all" {
		t.Errorf("txt = %q", got)
	}
	if out.next != nil {
		t.Error("expected exactly one node")
	}
}

func TestParseTXTReplyNoAnswersIsNoData(t *testing.T) {
	raw := buildAnswerFrame(t, wire.TypeA, [][]byte{{1, 2, 3, 4}})
	abuf := (*C.uchar)(C.CBytes(raw))
	defer C.free(unsafe.Pointer(abuf))

	var out *C.ares_txt_reply
	status := ares_parse_txt_reply(abuf, C.int(len(raw)), &out)
	if status != C.int(cares.ENODATA) {
		t.Errorf("status = %d, want ENODATA", status)
	}
}

func TestPeekEnvelopeTagDistinguishesChains(t *testing.T) {
	raw := buildAnswerFrame(t, wire.TypeTXT, [][]byte{txtRData("x")})
	abuf := (*C.uchar)(C.CBytes(raw))
	defer C.free(unsafe.Pointer(abuf))

	var out *C.ares_txt_reply
	if status := ares_parse_txt_reply(abuf, C.int(len(raw)), &out); status != C.int(cares.SUCCESS) {
		t.Fatalf("status = %d", status)
	}
	defer ares_free_data(unsafe.Pointer(out))

	if tag := peekEnvelopeTag(unsafe.Pointer(out)); tag != tagTXTChain {
		t.Errorf("tag = %d, want %d", tag, tagTXTChain)
	}
}

// encodeRootName encodes name as a self-contained (uncompressed) DNS
// name for use inside a synthetic answer's RDATA.
func encodeRootName(name string) []byte {
	var out []byte
	start := 0
	for i := 0; i <= len(name); i++ {
		if i == len(name) || name[i] == '.' {
			label := name[start:i]
			out = append(out, byte(len(label)))
			out = append(out, label...)
			start = i + 1
		}
	}
	return append(out, 0)
}
