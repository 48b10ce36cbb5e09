package wire

import "testing"

func TestParseAnswer(t *testing.T) {
	// "google.com" encoded at offset 0 (12 bytes), then at offset 12 an
	// answer whose name is a pointer back to offset 0, type A, class IN,
	// ttl 0x012c, 4-byte address, then trailing bytes.
	msg := []byte("\x06google\x03com\x00" +
		"\xc0\x00\x00\x01\x00\x01\x00\x00\x01\x2c\x00\x04\x8e\xfa\xb8\x8eASDF")

	answer, newOffset, err := ParseAnswer(msg, 12)
	if err != nil {
		t.Fatalf("ParseAnswer() error = %v", err)
	}

	if answer.Type != TypeA || answer.Class != ClassIN || answer.TTL != 0x012c {
		t.Errorf("ParseAnswer() = %+v, unexpected fixed fields", answer)
	}
	if string(answer.RData) != "\x8e\xfa\xb8\x8e" {
		t.Errorf("ParseAnswer() RData = %x, want 8efab88e", answer.RData)
	}
	if string(msg[newOffset:]) != "ASDF" {
		t.Errorf("remaining = %q, want %q", msg[newOffset:], "ASDF")
	}
}

func TestParseAnswer_RDLengthExceedsBuffer(t *testing.T) {
	// Root name, type A, class IN, ttl 0, rdlength=4, but only 1 byte of
	// rdata actually follows.
	msg := []byte("\x00\x00\x01\x00\x01\x00\x00\x00\x00\x00\x04\xaa")
	if _, _, err := ParseAnswer(msg, 0); err == nil {
		t.Fatal("ParseAnswer() with rdlength exceeding the buffer should fail")
	}
}
