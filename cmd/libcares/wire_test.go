package main

import (
	"encoding/binary"
	"testing"

	"github.com/caresgo/caresgo/internal/wire"
)

// buildAnswerFrame assembles a minimal valid reply message: one
// question plus len(rdatas) answers of the given type, each answer's
// name pointing back at the question via compression.
func buildAnswerFrame(t *testing.T, rtype uint16, rdatas [][]byte) []byte {
	t.Helper()

	q := wire.Question{Name: "example.com", Type: rtype, Class: wire.ClassIN}
	header := wire.Header{ID: 1, Flags: wire.FlagQR | wire.FlagRD, QDCount: 1, ANCount: uint16(len(rdatas))}
	buf := header.Serialize()

	encQ, err := q.Serialize()
	if err != nil {
		t.Fatalf("encode question: %v", err)
	}
	buf = append(buf, encQ...)

	for _, rdata := range rdatas {
		buf = append(buf, 0xC0, 0x0C)
		tail := make([]byte, 10)
		binary.BigEndian.PutUint16(tail[0:2], rtype)
		binary.BigEndian.PutUint16(tail[2:4], wire.ClassIN)
		binary.BigEndian.PutUint32(tail[4:8], 60)
		binary.BigEndian.PutUint16(tail[8:10], uint16(len(rdata)))
		buf = append(buf, tail...)
		buf = append(buf, rdata...)
	}
	return buf
}

func txtRData(s string) []byte {
	return append([]byte{byte(len(s))}, s...)
}
