package wire

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/caresgo/caresgo/internal/errors"
)

// Per RFC 1035 §3.1 / §4.1.4.
const (
	compressionMask        = 0xC0
	maxLabelLength          = 63
	maxNameLength           = 255
	maxCompressionPointers  = 128 // defensive bound on pointer-chase cycles, per spec §4.1
)

// ParseName decodes a dotted name starting at offset within msg, following
// compression pointers against the whole message. The cursor (newOffset) is
// only advanced on success; on failure it is left pointing at the original
// offset, never partway through.
func ParseName(msg []byte, offset int) (name string, newOffset int, err error) {
	if offset < 0 || offset >= len(msg) {
		return "", offset, &errors.WireFormatError{
			Operation: "parse name",
			Offset:    offset,
			Message:   "offset out of bounds",
		}
	}

	var labels []string
	pos := offset
	jumps := 0
	jumped := false

	for {
		if pos >= len(msg) {
			return "", offset, &errors.WireFormatError{
				Operation: "parse name",
				Offset:    pos,
				Message:   "unexpected end of message while parsing name",
			}
		}

		length := msg[pos]

		if length&compressionMask == compressionMask {
			if pos+1 >= len(msg) {
				return "", offset, &errors.WireFormatError{
					Operation: "parse name",
					Offset:    pos,
					Message:   "truncated compression pointer",
				}
			}

			pointerOffset := int(msg[pos]&0x3F)<<8 | int(msg[pos+1])

			if pointerOffset >= pos {
				return "", offset, &errors.WireFormatError{
					Operation: "parse name",
					Offset:    pos,
					Message:   fmt.Sprintf("compression pointer to %d is not backward from %d", pointerOffset, pos),
				}
			}

			if !jumped {
				newOffset = pos + 2
				jumped = true
			}

			pos = pointerOffset
			jumps++
			if jumps > maxCompressionPointers {
				return "", offset, &errors.WireFormatError{
					Operation: "parse name",
					Offset:    pos,
					Message:   "too many compression pointer jumps, possible loop",
				}
			}
			continue
		}

		if length == 0 {
			if !jumped {
				newOffset = pos + 1
			}
			break
		}

		if length > maxLabelLength {
			return "", offset, &errors.WireFormatError{
				Operation: "parse name",
				Offset:    pos,
				Message:   fmt.Sprintf("label length %d exceeds %d", length, maxLabelLength),
			}
		}

		if pos+1+int(length) > len(msg) {
			return "", offset, &errors.WireFormatError{
				Operation: "parse name",
				Offset:    pos,
				Message:   "truncated label",
			}
		}

		label := msg[pos+1 : pos+1+int(length)]
		if !utf8.Valid(label) {
			return "", offset, &errors.WireFormatError{
				Operation: "parse name",
				Offset:    pos,
				Message:   "label contains invalid UTF-8",
			}
		}

		labels = append(labels, string(label))
		pos += 1 + int(length)
	}

	name = strings.Join(labels, ".")
	if len(name) > maxNameLength {
		return "", offset, &errors.WireFormatError{
			Operation: "parse name",
			Offset:    offset,
			Message:   fmt.Sprintf("name length %d exceeds %d", len(name), maxNameLength),
		}
	}

	return name, newOffset, nil
}

// EncodeName serializes a dotted name into length-prefixed labels terminated
// by a zero-length label. Compression is never emitted.
func EncodeName(name string) ([]byte, error) {
	if name == "" || name == "." {
		return []byte{0}, nil
	}

	labels := strings.Split(name, ".")
	if labels[len(labels)-1] == "" {
		labels = labels[:len(labels)-1]
	}

	encoded := make([]byte, 0, maxNameLength)
	for _, label := range labels {
		if len(label) == 0 {
			return nil, &errors.ValidationError{
				Field:   "name",
				Value:   name,
				Message: "empty label (consecutive dots)",
			}
		}
		if len(label) > maxLabelLength {
			return nil, &errors.ValidationError{
				Field:   "name",
				Value:   name,
				Message: fmt.Sprintf("label %q exceeds %d bytes", label, maxLabelLength),
			}
		}
		encoded = append(encoded, byte(len(label)))
		encoded = append(encoded, label...)
	}
	encoded = append(encoded, 0)

	if len(encoded) > maxNameLength {
		return nil, &errors.ValidationError{
			Field:   "name",
			Value:   name,
			Message: fmt.Sprintf("encoded name length %d exceeds %d", len(encoded), maxNameLength),
		}
	}

	return encoded, nil
}
