package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/caresgo/caresgo/internal/errors"
)

// Answer is one resource record: the shared name/type/class/ttl fields plus
// opaque, per-type RDATA. RDATA is decoded by the per-type helpers in
// rdata.go once the caller knows which type it is dealing with.
type Answer struct {
	Name  string
	Type  uint16
	Class uint16
	TTL   uint32
	RData []byte

	// RDataOffset is RData's absolute start offset in the message ParseAnswer
	// read it from. Re-parsing a name embedded in RDATA (NS, MX targets) needs
	// the original message, not the isolated RData slice, since a compression
	// pointer inside RDATA is an offset into the whole message.
	RDataOffset int
}

// ParseAnswer reads one answer/authority/additional entry starting at offset.
func ParseAnswer(msg []byte, offset int) (Answer, int, error) {
	name, newOffset, err := ParseName(msg, offset)
	if err != nil {
		return Answer{}, offset, err
	}

	if newOffset+10 > len(msg) {
		return Answer{}, offset, &errors.WireFormatError{
			Operation: "parse answer",
			Offset:    newOffset,
			Message:   "truncated answer: missing fixed fields",
		}
	}

	rtype := binary.BigEndian.Uint16(msg[newOffset : newOffset+2])
	class := binary.BigEndian.Uint16(msg[newOffset+2 : newOffset+4])
	ttl := binary.BigEndian.Uint32(msg[newOffset+4 : newOffset+8])
	rdlength := binary.BigEndian.Uint16(msg[newOffset+8 : newOffset+10])
	newOffset += 10

	if newOffset+int(rdlength) > len(msg) {
		return Answer{}, offset, &errors.WireFormatError{
			Operation: "parse answer",
			Offset:    newOffset,
			Message:   fmt.Sprintf("rdlength %d exceeds remaining %d bytes", rdlength, len(msg)-newOffset),
		}
	}

	rdata := make([]byte, rdlength)
	copy(rdata, msg[newOffset:newOffset+int(rdlength)])

	a := Answer{
		Name:        name,
		Type:        rtype,
		Class:       class,
		TTL:         ttl,
		RData:       rdata,
		RDataOffset: newOffset,
	}
	return a, newOffset + int(rdlength), nil
}
