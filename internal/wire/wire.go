// Package wire implements the DNS message wire format per RFC 1035 §4.1.
//
// It parses and serializes the header, question, answer, and per-type
// record bodies used by the resolver engine, including label compression
// on read. Compression is never emitted on write (§4.1 of the spec this
// package implements).
package wire

// Resource record types handled by this package. Other types parse with
// their RDATA left as opaque bytes.
const (
	TypeA    uint16 = 1
	TypeNS   uint16 = 2
	TypeMX   uint16 = 15
	TypeTXT  uint16 = 16
	TypeAAAA uint16 = 28
)

// ClassIN is the only record class the engine ever sets or expects.
const ClassIN uint16 = 1

// Flag bits used by the engine when building queries and reading replies.
const (
	FlagQR          uint16 = 0x8000 // query (0) vs response (1)
	FlagRD          uint16 = 0x0100 // recursion desired
	StandardQuery   uint16 = 0x0100 // flags value the engine sends: RD set, everything else zero
	RcodeMask       uint16 = 0x000F
	RcodeNameError  uint16 = 3 // NXDOMAIN
)

// Rcode extracts the response code (low 4 bits of Flags) per RFC 1035 §4.1.1.
func Rcode(flags uint16) uint8 {
	return uint8(flags & RcodeMask) //nolint:gosec // masked to 4 bits, always fits
}
