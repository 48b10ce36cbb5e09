package wire

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/caresgo/caresgo/internal/errors"
)

// ParseA decodes an A record's RDATA: a 4-byte IPv4 address.
func ParseA(rdata []byte) (net.IP, error) {
	if len(rdata) != 4 {
		return nil, &errors.WireFormatError{
			Operation: "parse A rdata",
			Offset:    0,
			Message:   fmt.Sprintf("expected 4 bytes, got %d", len(rdata)),
		}
	}
	return net.IPv4(rdata[0], rdata[1], rdata[2], rdata[3]), nil
}

// ParseAAAA decodes an AAAA record's RDATA: a 16-byte IPv6 address.
func ParseAAAA(rdata []byte) (net.IP, error) {
	if len(rdata) != 16 {
		return nil, &errors.WireFormatError{
			Operation: "parse AAAA rdata",
			Offset:    0,
			Message:   fmt.Sprintf("expected 16 bytes, got %d", len(rdata)),
		}
	}
	ip := make(net.IP, 16)
	copy(ip, rdata)
	return ip, nil
}

// ParseNSName decodes an NS record's RDATA as a name, resolved against the
// whole enclosing message (so compression pointers inside RDATA work).
func ParseNSName(msg []byte, rdataOffset int) (string, error) {
	name, _, err := ParseName(msg, rdataOffset)
	return name, err
}

// MXRecord is the decoded body of an MX answer: priority plus target host.
type MXRecord struct {
	Priority uint16
	Host     string
}

// ParseMX decodes an MX record's RDATA against the whole enclosing message,
// since the target name may use compression.
func ParseMX(msg []byte, rdataOffset int, rdlength int) (MXRecord, error) {
	if rdlength < 2 {
		return MXRecord{}, &errors.WireFormatError{
			Operation: "parse MX rdata",
			Offset:    rdataOffset,
			Message:   "truncated MX record: missing priority",
		}
	}
	priority := binary.BigEndian.Uint16(msg[rdataOffset : rdataOffset+2])
	host, _, err := ParseName(msg, rdataOffset+2)
	if err != nil {
		return MXRecord{}, err
	}
	return MXRecord{Priority: priority, Host: host}, nil
}

// ParseTXT decodes the first length-prefixed character-string in a TXT
// record's RDATA, truncating to whatever remains rather than failing.
func ParseTXT(rdata []byte) string {
	if len(rdata) == 0 {
		return ""
	}
	length := int(rdata[0])
	if 1+length > len(rdata) {
		length = len(rdata) - 1
	}
	if length < 0 {
		return ""
	}
	return string(rdata[1 : 1+length])
}
