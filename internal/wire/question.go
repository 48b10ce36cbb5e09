package wire

import (
	"encoding/binary"

	"github.com/caresgo/caresgo/internal/errors"
)

// Question is one entry of the question section: a name plus the queried
// type and class.
type Question struct {
	Name  string
	Type  uint16
	Class uint16
}

// ParseQuestion reads a question entry starting at offset.
func ParseQuestion(msg []byte, offset int) (Question, int, error) {
	name, newOffset, err := ParseName(msg, offset)
	if err != nil {
		return Question{}, offset, err
	}

	if newOffset+4 > len(msg) {
		return Question{}, offset, &errors.WireFormatError{
			Operation: "parse question",
			Offset:    newOffset,
			Message:   "truncated question: missing type/class",
		}
	}

	q := Question{
		Name:  name,
		Type:  binary.BigEndian.Uint16(msg[newOffset : newOffset+2]),
		Class: binary.BigEndian.Uint16(msg[newOffset+2 : newOffset+4]),
	}
	return q, newOffset + 4, nil
}

// Serialize writes the question in wire format: encoded name, type, class.
func (q Question) Serialize() ([]byte, error) {
	encodedName, err := EncodeName(q.Name)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(encodedName)+4)
	buf = append(buf, encodedName...)
	tail := make([]byte, 4)
	binary.BigEndian.PutUint16(tail[0:2], q.Type)
	binary.BigEndian.PutUint16(tail[2:4], q.Class)
	return append(buf, tail...), nil
}
