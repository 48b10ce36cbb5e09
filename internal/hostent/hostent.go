// Package hostent builds the Go-native equivalent of a libc hostent
// from a parsed answer frame, in each of the four modes the exported
// ares_parse_*_reply functions need: all addresses, only A, only AAAA,
// or NS-style aliases. Translating a Hostent into the platform C
// struct hostent (and back, for disposal) is the ABI surface's job, not
// this package's — this package never allocates C memory.
package hostent

import (
	"syscall"

	"github.com/caresgo/caresgo/internal/cares"
	"github.com/caresgo/caresgo/internal/wire"
)

// Mode selects which answers Build copies into Hostent.Addrs, or
// whether it reads them as aliases instead.
type Mode int

const (
	ModeAddrs Mode = iota
	ModeAddrs4
	ModeAddrs6
	ModeAliases
)

// afNS is the address-family-shaped placeholder c-ares uses for NS
// answers, which have no real address family of their own.
const afNS = 0x02

// Hostent is the parsed, Go-owned form of a DNS answer set, ready for
// the ABI surface to copy into a C-allocated struct hostent.
type Hostent struct {
	Name     string
	Aliases  []string
	AddrType int
	Length   int
	Addrs    [][]byte
}

// Build parses a frame's answer section into a Hostent. It errors with
// a cares.Error if there are no answers, the leading answer's record
// type isn't one the ABI's hostent functions understand, or an address
// record's length doesn't match its family.
func Build(frame *wire.Frame, mode Mode) (*Hostent, error) {
	if len(frame.Answers) == 0 {
		return nil, cares.Error(cares.ENODATA)
	}

	first := frame.Answers[0]
	addrType, err := addrFamily(first.Type)
	if err != nil {
		return nil, err
	}

	h := &Hostent{
		Name:     first.Name,
		AddrType: addrType,
		Length:   len(first.RData),
	}

	switch mode {
	case ModeAddrs, ModeAddrs4, ModeAddrs6:
		if err := h.collectAddrs(frame, mode, addrType); err != nil {
			return nil, err
		}
	case ModeAliases:
		if err := h.collectAliases(frame); err != nil {
			return nil, err
		}
	}

	return h, nil
}

func addrFamily(recordType uint16) (int, error) {
	switch recordType {
	case wire.TypeA:
		return syscall.AF_INET, nil
	case wire.TypeAAAA:
		return syscall.AF_INET6, nil
	case wire.TypeNS:
		return afNS, nil
	default:
		return 0, cares.Error(cares.EBADRESP)
	}
}

func (h *Hostent) collectAddrs(frame *wire.Frame, mode Mode, addrType int) error {
	var expected int
	switch addrType {
	case syscall.AF_INET:
		expected = 4
	case syscall.AF_INET6:
		expected = 16
	default:
		return cares.Error(cares.EFORMERR)
	}

	for _, ans := range frame.Answers {
		if mode == ModeAddrs4 && ans.Type != wire.TypeA {
			continue
		}
		if mode == ModeAddrs6 && ans.Type != wire.TypeAAAA {
			continue
		}
		if len(ans.RData) != expected {
			return cares.Error(cares.EFORMERR)
		}
		addr := make([]byte, len(ans.RData))
		copy(addr, ans.RData)
		h.Addrs = append(h.Addrs, addr)
	}
	return nil
}

func (h *Hostent) collectAliases(frame *wire.Frame) error {
	for _, ans := range frame.Answers {
		name, err := wire.ParseNSName(frame.Raw, ans.RDataOffset)
		if err != nil {
			return err
		}
		h.Aliases = append(h.Aliases, name)
	}
	return nil
}
