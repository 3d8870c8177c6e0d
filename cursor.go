package particlewav

import (
	"encoding/binary"
	"fmt"
)

// cursor performs bounds-checked little-endian reads over an immutable
// byte slice. It carries a position but never owns or mutates the data.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) remaining() int {
	if c.pos >= len(c.data) {
		return 0
	}

	return len(c.data) - c.pos
}

func (c *cursor) need(n int) error {
	if n < 0 || c.remaining() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d of %d", ErrTruncated, n, c.pos, len(c.data))
	}

	return nil
}

func (c *cursor) readU8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}

	v := c.data[c.pos]
	c.pos++

	return v, nil
}

func (c *cursor) readU16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}

	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2

	return v, nil
}

func (c *cursor) readU32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}

	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4

	return v, nil
}

func (c *cursor) readU64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}

	v := binary.LittleEndian.Uint64(c.data[c.pos:])
	c.pos += 8

	return v, nil
}

func (c *cursor) peekU32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(c.data[c.pos:]), nil
}

// readBytes returns a view into the underlying slice; callers must copy
// if they retain it past the life of the source buffer.
func (c *cursor) readBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}

	v := c.data[c.pos : c.pos+n]
	c.pos += n

	return v, nil
}

func (c *cursor) readID() ([4]byte, error) {
	var id [4]byte

	b, err := c.readBytes(4)
	if err != nil {
		return id, err
	}

	copy(id[:], b)

	return id, nil
}

func (c *cursor) advance(n int) error {
	if err := c.need(n); err != nil {
		return err
	}

	c.pos += n

	return nil
}
