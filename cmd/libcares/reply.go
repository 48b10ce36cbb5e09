package main

/*
#include <stdlib.h>
#include <string.h>
#include "cares_types.h"
*/
import "C"

import (
	"unsafe"

	"github.com/caresgo/caresgo/internal/cabi"
	"github.com/caresgo/caresgo/internal/cares"
	"github.com/caresgo/caresgo/internal/hostent"
	"github.com/caresgo/caresgo/internal/wire"
)

// envelope tags recorded by ares_free_data to tell which release
// function a payload pointer needs.
const (
	tagMXChain uint8 = iota + 1
	tagTXTChain
	tagAddrPortChain
)

func parseReplyFrame(abuf *C.uchar, alen C.int) (*wire.Frame, C.int) {
	raw := C.GoBytes(unsafe.Pointer(abuf), alen)
	frame, err := wire.ParseFrame(raw)
	if err != nil {
		return nil, C.int(cares.EBADRESP)
	}
	if len(frame.Answers) == 0 {
		return nil, C.int(cares.ENODATA)
	}
	return frame, C.int(cares.SUCCESS)
}

//export ares_parse_a_reply
func ares_parse_a_reply(abuf *C.uchar, alen C.int, out **C.struct_hostent, addrttls *C.ares_addrttl, naddrttls *C.int) C.int {
	frame, status := parseReplyFrame(abuf, alen)
	if status != C.int(cares.SUCCESS) {
		return status
	}
	h, err := hostent.Build(frame, hostent.ModeAddrs4)
	if err != nil {
		return C.int(codeFromHostentErr(err))
	}
	if out != nil {
		*out = buildCHostent(h)
	}
	fillAddrttls4(h, addrttls, naddrttls)
	return C.int(cares.SUCCESS)
}

//export ares_parse_aaaa_reply
func ares_parse_aaaa_reply(abuf *C.uchar, alen C.int, out **C.struct_hostent, addrttls *C.ares_addr6ttl, naddrttls *C.int) C.int {
	frame, status := parseReplyFrame(abuf, alen)
	if status != C.int(cares.SUCCESS) {
		return status
	}
	h, err := hostent.Build(frame, hostent.ModeAddrs6)
	if err != nil {
		return C.int(codeFromHostentErr(err))
	}
	if out != nil {
		*out = buildCHostent(h)
	}
	fillAddrttls6(h, addrttls, naddrttls)
	return C.int(cares.SUCCESS)
}

func fillAddrttls4(h *hostent.Hostent, addrttls *C.ares_addrttl, naddrttls *C.int) {
	if addrttls == nil || naddrttls == nil {
		return
	}
	cap := int(*naddrttls)
	n := len(h.Addrs)
	if n > cap {
		n = cap
	}
	out := unsafe.Slice(addrttls, cap)
	for i := 0; i < n; i++ {
		dst := (*[4]byte)(unsafe.Pointer(&out[i].ipaddr))
		copy(dst[:], h.Addrs[i])
		out[i].ttl = 0
	}
	*naddrttls = C.int(n)
}

func fillAddrttls6(h *hostent.Hostent, addrttls *C.ares_addr6ttl, naddrttls *C.int) {
	if addrttls == nil || naddrttls == nil {
		return
	}
	cap := int(*naddrttls)
	n := len(h.Addrs)
	if n > cap {
		n = cap
	}
	out := unsafe.Slice(addrttls, cap)
	for i := 0; i < n; i++ {
		dst := (*[16]byte)(unsafe.Pointer(&out[i].ip6addr))
		copy(dst[:], h.Addrs[i])
		out[i].ttl = 0
	}
	*naddrttls = C.int(n)
}

//export ares_parse_ns_reply
func ares_parse_ns_reply(abuf *C.uchar, alen C.int, out **C.struct_hostent) C.int {
	frame, status := parseReplyFrame(abuf, alen)
	if status != C.int(cares.SUCCESS) {
		return status
	}
	h, err := hostent.Build(frame, hostent.ModeAliases)
	if err != nil {
		return C.int(codeFromHostentErr(err))
	}
	if out != nil {
		*out = buildCHostent(h)
	}
	return C.int(cares.SUCCESS)
}

//export ares_parse_mx_reply
func ares_parse_mx_reply(abuf *C.uchar, alen C.int, out **C.ares_mx_reply) C.int {
	frame, status := parseReplyFrame(abuf, alen)
	if status != C.int(cares.SUCCESS) {
		return status
	}

	var recs []wire.MXRecord
	for _, ans := range frame.Answers {
		if ans.Type != wire.TypeMX {
			continue
		}
		rec, err := wire.ParseMX(frame.Raw, ans.RDataOffset, len(ans.RData))
		if err != nil {
			return C.int(cares.EBADRESP)
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return C.int(cares.ENODATA)
	}

	var rest *C.ares_mx_reply
	for i := len(recs) - 1; i >= 1; i-- {
		n := (*C.ares_mx_reply)(C.malloc(C.size_t(unsafe.Sizeof(C.ares_mx_reply{}))))
		*n = C.ares_mx_reply{
			host:     C.CString(recs[i].Host),
			priority: C.ushort(recs[i].Priority),
			next:     rest,
		}
		rest = n
	}

	envPtr := cabi.NewEnvelope(tagMXChain, C.ares_mx_reply{
		host:     C.CString(recs[0].Host),
		priority: C.ushort(recs[0].Priority),
		next:     rest,
	})
	*out = (*C.ares_mx_reply)(envPtr)
	return C.int(cares.SUCCESS)
}

//export ares_parse_txt_reply
func ares_parse_txt_reply(abuf *C.uchar, alen C.int, out **C.ares_txt_reply) C.int {
	frame, status := parseReplyFrame(abuf, alen)
	if status != C.int(cares.SUCCESS) {
		return status
	}

	var texts []string
	for _, ans := range frame.Answers {
		if ans.Type != wire.TypeTXT {
			continue
		}
		texts = append(texts, wire.ParseTXT(ans.RData))
	}
	if len(texts) == 0 {
		return C.int(cares.ENODATA)
	}

	var rest *C.ares_txt_reply
	for i := len(texts) - 1; i >= 1; i-- {
		n := (*C.ares_txt_reply)(C.malloc(C.size_t(unsafe.Sizeof(C.ares_txt_reply{}))))
		*n = C.ares_txt_reply{
			txt:    (*C.uchar)(C.CBytes([]byte(texts[i]))),
			length: C.size_t(len(texts[i])),
			next:   rest,
		}
		rest = n
	}

	envPtr := cabi.NewEnvelope(tagTXTChain, C.ares_txt_reply{
		txt:    (*C.uchar)(C.CBytes([]byte(texts[0]))),
		length: C.size_t(len(texts[0])),
		next:   rest,
	})
	*out = (*C.ares_txt_reply)(envPtr)
	return C.int(cares.SUCCESS)
}

func codeFromHostentErr(err error) int {
	if ce, ok := err.(cares.Error); ok {
		return ce.Code()
	}
	return cares.EBADRESP
}

// peekEnvelopeTag recovers the tag byte cabi.NewEnvelope stored ahead of
// dataPtr without knowing the payload's real type: every envelope this
// package builds wraps a pointer-containing struct, so the Data field's
// alignment — and therefore its offset from the envelope's start — is
// the same regardless of which concrete T the caller used.
func peekEnvelopeTag(dataPtr unsafe.Pointer) uint8 {
	return cabi.RestoreEnvelope[unsafe.Pointer](dataPtr).Tag
}

//export ares_free_data
func ares_free_data(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	switch peekEnvelopeTag(ptr) {
	case tagMXChain:
		cabi.FreeEnvelope(ptr, func(head *C.ares_mx_reply) {
			C.free(unsafe.Pointer(head.host))
			freeMXChain(head.next)
		})
	case tagTXTChain:
		cabi.FreeEnvelope(ptr, func(head *C.ares_txt_reply) {
			C.free(unsafe.Pointer(head.txt))
			freeTXTChain(head.next)
		})
	case tagAddrPortChain:
		cabi.FreeEnvelope(ptr, func(head *C.ares_addr_port_node) {
			freeAddrPortNodes(head.next)
		})
	}
}

func freeMXChain(head *C.ares_mx_reply) {
	for head != nil {
		next := head.next
		C.free(unsafe.Pointer(head.host))
		C.free(unsafe.Pointer(head))
		head = next
	}
}

func freeTXTChain(head *C.ares_txt_reply) {
	for head != nil {
		next := head.next
		C.free(unsafe.Pointer(head.txt))
		C.free(unsafe.Pointer(head))
		head = next
	}
}

//export ares_free_string
func ares_free_string(ptr unsafe.Pointer) {
	C.free(ptr)
}
