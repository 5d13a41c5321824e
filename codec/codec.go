// Package codec provides the length-prefixed binary primitives used by
// every snapshot-serializable type in value and vm. It mirrors the
// teacher's bufio-based database writer/reader (see
// MongooseMoo-barn/db/writer.go and db/reader.go) but targets a compact
// binary wire format instead of the teacher's line-oriented text format.
package codec

import (
	"encoding/binary"
	"fmt"
)

// ErrTruncated is returned when a decode runs out of bytes mid-value.
type ErrTruncated struct {
	Location string
}

func (e ErrTruncated) Error() string {
	return fmt.Sprintf("snapshot truncated at %s", e.Location)
}

// Cursor walks a byte slice during decode, tracking only the read
// position; each read call takes a diagnostic location label the way the
// teacher's readers accept a "location" for error messages woven into
// parse failures.
type Cursor struct {
	buf []byte
	pos int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

func (c *Cursor) take(n int, location string) ([]byte, error) {
	if c.Remaining() < n {
		return nil, ErrTruncated{Location: location}
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// PutUint64 appends a little-endian u64 (the spec's "usize" encoding).
func PutUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func PutInt64(buf []byte, v int64) []byte {
	return PutUint64(buf, uint64(v))
}

func (c *Cursor) Uint64(location string) (uint64, error) {
	b, err := c.take(8, location)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *Cursor) Int64(location string) (int64, error) {
	v, err := c.Uint64(location)
	return int64(v), err
}

func (c *Cursor) USize(location string) (int, error) {
	v, err := c.Uint64(location)
	return int(v), err
}

// PutBool appends a single 0/1 byte.
func PutBool(buf []byte, v bool) []byte {
	if v {
		return append(buf, 1)
	}
	return append(buf, 0)
}

func (c *Cursor) Bool(location string) (bool, error) {
	b, err := c.take(1, location)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// PutByte appends a single raw byte, used for enum discriminants.
func PutByte(buf []byte, b byte) []byte {
	return append(buf, b)
}

func (c *Cursor) Byte(location string) (byte, error) {
	b, err := c.take(1, location)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// PutString appends a length-prefixed UTF-8 string.
func PutString(buf []byte, s string) []byte {
	buf = PutUint64(buf, uint64(len(s)))
	return append(buf, s...)
}

func (c *Cursor) String(location string) (string, error) {
	n, err := c.USize(location)
	if err != nil {
		return "", err
	}
	b, err := c.take(n, location)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// PutBytes appends a length-prefixed raw byte slice.
func PutBytes(buf []byte, b []byte) []byte {
	buf = PutUint64(buf, uint64(len(b)))
	return append(buf, b...)
}

func (c *Cursor) Bytes(location string) ([]byte, error) {
	n, err := c.USize(location)
	if err != nil {
		return nil, err
	}
	b, err := c.take(n, location)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}
