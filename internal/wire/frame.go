package wire

// Frame is a full DNS message: the header's id/flags plus the question and
// answer sections. Authority and additional sections are parsed (so the
// cursor lands correctly) and discarded, per the spec's scope.
type Frame struct {
	TransactionID uint16
	Flags         uint16
	Queries       []Question
	Answers       []Answer

	// Raw is the full message Answers was parsed from. Names embedded in
	// RDATA (NS, MX targets) must be re-parsed against Raw at the
	// corresponding Answer's RDataOffset, never against the answer's
	// isolated RData slice, since compression pointers are offsets into
	// the whole message.
	Raw []byte
}

// ParseFrame parses a complete message: header, qdcount questions, ancount
// answers, then nscount+arcount records read and thrown away.
func ParseFrame(msg []byte) (*Frame, error) {
	header, err := ParseHeader(msg)
	if err != nil {
		return nil, err
	}

	offset := HeaderSize

	queries := make([]Question, 0, header.QDCount)
	for i := uint16(0); i < header.QDCount; i++ {
		q, next, err := ParseQuestion(msg, offset)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
		offset = next
	}

	answers := make([]Answer, 0, header.ANCount)
	for i := uint16(0); i < header.ANCount; i++ {
		a, next, err := ParseAnswer(msg, offset)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
		offset = next
	}

	// Authority and additional sections: parsed only to keep the cursor
	// correct for any trailing data, then discarded per spec §4.1.
	for i := uint16(0); i < header.NSCount+header.ARCount; i++ {
		_, next, err := ParseAnswer(msg, offset)
		if err != nil {
			return nil, err
		}
		offset = next
	}

	return &Frame{
		TransactionID: header.ID,
		Flags:         header.Flags,
		Queries:       queries,
		Answers:       answers,
		Raw:           msg,
	}, nil
}

// Serialize writes the header (qdcount = len(Queries), other counts zero)
// followed by the serialized queries. Answers are never serialized: the
// engine only ever writes queries.
func (f *Frame) Serialize() ([]byte, error) {
	header := Header{
		ID:      f.TransactionID,
		Flags:   f.Flags,
		QDCount: uint16(len(f.Queries)),
	}

	buf := header.Serialize()
	for _, q := range f.Queries {
		encoded, err := q.Serialize()
		if err != nil {
			return nil, err
		}
		buf = append(buf, encoded...)
	}
	return buf, nil
}
