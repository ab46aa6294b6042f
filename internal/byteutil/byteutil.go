// Package byteutil provides the low-level big-endian reads and bounds checks
// shared by the chunk reader and header model.
package byteutil

import "encoding/binary"

// Cursor is a bounded read position over a byte slice. Every read advances
// the cursor and fails rather than reading past the end of data.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data in a Cursor starting at offset 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the cursor's current byte offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// InBounds reports whether n further bytes can be read without crossing the end.
func (c *Cursor) InBounds(n int) bool {
	return n >= 0 && c.pos+n <= len(c.data)
}

// Advance returns the next n bytes and moves the cursor past them, or false
// if doing so would read past the end of data.
func (c *Cursor) Advance(n int) ([]byte, bool) {
	if !c.InBounds(n) {
		return nil, false
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, true
}

// ReadUint16 reads a big-endian uint16 and advances the cursor by 2 bytes.
func (c *Cursor) ReadUint16() (uint16, bool) {
	b, ok := c.Advance(2)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint16(b), true
}

// ReadUint32 reads a big-endian uint32 and advances the cursor by 4 bytes.
func (c *Cursor) ReadUint32() (uint32, bool) {
	b, ok := c.Advance(4)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint32(b), true
}

// ReadUint64 reads a big-endian uint64 and advances the cursor by 8 bytes.
func (c *Cursor) ReadUint64() (uint64, bool) {
	b, ok := c.Advance(8)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint64(b), true
}

// ReadByte reads a single byte and advances the cursor by 1.
func (c *Cursor) ReadByte() (byte, bool) {
	b, ok := c.Advance(1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

// BigEndianUint32 decodes a big-endian uint32 from the first 4 bytes of b.
// Callers must ensure len(b) >= 4.
func BigEndianUint32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// MatchesASCII reports whether b is byte-for-byte equal to the ASCII string s.
func MatchesASCII(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		if b[i] != s[i] {
			return false
		}
	}
	return true
}

// WithinBounds reports whether [begin, end) is a valid, non-crossing range
// within a container of length n.
func WithinBounds(begin, end, n int) bool {
	return begin >= 0 && end >= begin && end <= n
}
