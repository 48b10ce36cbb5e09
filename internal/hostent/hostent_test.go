package hostent

import (
	"errors"
	"syscall"
	"testing"

	"github.com/caresgo/caresgo/internal/cares"
	"github.com/caresgo/caresgo/internal/wire"
)

func frame(answers ...wire.Answer) *wire.Frame {
	return &wire.Frame{Answers: answers}
}

func frameWithRaw(raw []byte, answers ...wire.Answer) *wire.Frame {
	return &wire.Frame{Answers: answers, Raw: raw}
}

func TestBuildAddrsA(t *testing.T) {
	f := frame(
		wire.Answer{Name: "example.com", Type: wire.TypeA, Class: wire.ClassIN, RData: []byte{1, 2, 3, 4}},
		wire.Answer{Name: "example.com", Type: wire.TypeA, Class: wire.ClassIN, RData: []byte{5, 6, 7, 8}},
	)

	h, err := Build(f, ModeAddrs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if h.AddrType != syscall.AF_INET {
		t.Errorf("AddrType = %d, want AF_INET", h.AddrType)
	}
	if len(h.Addrs) != 2 {
		t.Fatalf("Addrs = %v, want 2 entries", h.Addrs)
	}
}

func TestBuildAddrs4FiltersNonA(t *testing.T) {
	f := frame(
		wire.Answer{Name: "example.com", Type: wire.TypeA, Class: wire.ClassIN, RData: []byte{1, 2, 3, 4}},
		wire.Answer{Name: "example.com", Type: wire.TypeAAAA, Class: wire.ClassIN, RData: make([]byte, 16)},
	)
	h, err := Build(f, ModeAddrs4)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(h.Addrs) != 1 {
		t.Fatalf("Addrs = %v, want 1 entry", h.Addrs)
	}
}

func TestBuildEmptyAnswersIsENODATA(t *testing.T) {
	_, err := Build(frame(), ModeAddrs)
	var ce cares.Error
	if !errors.As(err, &ce) || ce.Code() != cares.ENODATA {
		t.Fatalf("Build() error = %v, want ARES_ENODATA", err)
	}
}

func TestBuildBadAddrLengthIsEFORMERR(t *testing.T) {
	f := frame(wire.Answer{Name: "example.com", Type: wire.TypeA, Class: wire.ClassIN, RData: []byte{1, 2, 3}})
	_, err := Build(f, ModeAddrs)
	var ce cares.Error
	if !errors.As(err, &ce) || ce.Code() != cares.EFORMERR {
		t.Fatalf("Build() error = %v, want ARES_EFORMERR", err)
	}
}

func TestBuildAliases(t *testing.T) {
	encoded, err := wire.EncodeName("ns1.example.com")
	if err != nil {
		t.Fatalf("EncodeName() error = %v", err)
	}
	f := frameWithRaw(encoded, wire.Answer{Name: "example.com", Type: wire.TypeNS, Class: wire.ClassIN, RData: encoded, RDataOffset: 0})

	h, err := Build(f, ModeAliases)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(h.Aliases) != 1 || h.Aliases[0] != "ns1.example.com" {
		t.Fatalf("Aliases = %v, want [ns1.example.com]", h.Aliases)
	}
}

func TestBuildAliasesWithCompressionPointer(t *testing.T) {
	// "example.com" at offset 0, then an NS RDATA at offset 13 holding
	// "ns1" followed by a compression pointer back to "example.com".
	// RData only captures the isolated "\x03ns1\xc0\x00" bytes; resolving
	// the pointer requires the full message and the RDATA's absolute
	// offset, not RData alone.
	raw := []byte("\x07example\x03com\x00\x03ns1\xc0\x00")
	rdataOffset := 13
	rdata := raw[rdataOffset:]

	f := frameWithRaw(raw, wire.Answer{
		Name:        "example.com",
		Type:        wire.TypeNS,
		Class:       wire.ClassIN,
		RData:       rdata,
		RDataOffset: rdataOffset,
	})

	h, err := Build(f, ModeAliases)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(h.Aliases) != 1 || h.Aliases[0] != "ns1.example.com" {
		t.Fatalf("Aliases = %v, want [ns1.example.com]", h.Aliases)
	}
}

func TestBuildUnknownRecordType(t *testing.T) {
	f := frame(wire.Answer{Name: "example.com", Type: wire.TypeTXT, Class: wire.ClassIN, RData: []byte("x")})
	_, err := Build(f, ModeAddrs)
	var ce cares.Error
	if !errors.As(err, &ce) || ce.Code() != cares.EBADRESP {
		t.Fatalf("Build() error = %v, want ARES_EBADRESP", err)
	}
}
