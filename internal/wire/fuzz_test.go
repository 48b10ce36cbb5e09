package wire

import "testing"

// FuzzParseFrame checks that ParseFrame never panics on arbitrary input,
// including malformed compression pointers and truncated sections.
func FuzzParseFrame(f *testing.F) {
	f.Add([]byte("\x8a\x70\x81\x80\x00\x01\x00\x01\x00\x00\x00\x00" +
		"\x06google\x03com\x00\x00\x01\x00\x01" +
		"\xc0\x0c\x00\x01\x00\x01\x00\x00\x01\x2c\x00\x04\x8e\xfa\xb8\x8e"))
	f.Add([]byte{0x12, 0x34, 0x84, 0x00}) // too short
	f.Add([]byte{
		0x12, 0x34, 0x84, 0x00,
		0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xc0, 0x0c, 0x00, 0x01, 0x00, 0x01, // self-referencing pointer
	})
	f.Add([]byte{
		0x12, 0x34, 0x84, 0x00,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
		0xc0, 0xc8, 0x00, 0x01, 0x00, 0x01, 0, 0, 0, 0x78, 0x00, 0x04, 1, 2, 3, 4,
	}) // pointer beyond message

	f.Fuzz(func(_ *testing.T, data []byte) {
		_, _ = ParseFrame(data)
	})
}
