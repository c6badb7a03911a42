package introspect

import (
	"encoding/binary"
	"math"
)

// cursor walks a raw byte slice left to right. Unlike the teacher's
// LEByteDecoder (which wraps a bytes.Reader), cursor keeps the underlying
// slice itself so the visitor can hand a caller a live, mutable window into
// the original buffer rather than a copy.
type cursor struct {
	buf []byte
	pos int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

// need fails with TruncatedBufferError if fewer than n bytes remain.
func (c *cursor) need(n int) error {
	if c.remaining() < n {
		return &TruncatedBufferError{Needed: n, Remaining: c.remaining()}
	}
	return nil
}

// take returns the next n bytes as a slice aliasing the cursor's backing
// array (no copy) and advances the cursor past them.
func (c *cursor) take(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) readUint8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readUint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) readUint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) readUint64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readScalar reads one fixed-width value of kind and returns it boxed as a
// Variant. STRING and user types are not handled here; callers special-case
// them since they are not fixed-width.
func (c *cursor) readScalar(kind BuiltinKind) (Variant, error) {
	switch kind {
	case Bool, Byte, Char, Uint8:
		v, err := c.readUint8()
		if err != nil {
			return Variant{}, err
		}
		return NewUintVariant(kind, uint64(v)), nil
	case Int8:
		v, err := c.readUint8()
		if err != nil {
			return Variant{}, err
		}
		return NewIntVariant(kind, int64(int8(v))), nil
	case Uint16:
		v, err := c.readUint16()
		if err != nil {
			return Variant{}, err
		}
		return NewUintVariant(kind, uint64(v)), nil
	case Int16:
		v, err := c.readUint16()
		if err != nil {
			return Variant{}, err
		}
		return NewIntVariant(kind, int64(int16(v))), nil
	case Uint32:
		v, err := c.readUint32()
		if err != nil {
			return Variant{}, err
		}
		return NewUintVariant(kind, uint64(v)), nil
	case Int32:
		v, err := c.readUint32()
		if err != nil {
			return Variant{}, err
		}
		return NewIntVariant(kind, int64(int32(v))), nil
	case Uint64:
		v, err := c.readUint64()
		if err != nil {
			return Variant{}, err
		}
		return NewUintVariant(kind, v), nil
	case Int64:
		v, err := c.readUint64()
		if err != nil {
			return Variant{}, err
		}
		return NewIntVariant(kind, int64(v)), nil
	case Float32:
		v, err := c.readUint32()
		if err != nil {
			return Variant{}, err
		}
		return NewFloatVariant(kind, float64(math.Float32frombits(v))), nil
	case Float64:
		v, err := c.readUint64()
		if err != nil {
			return Variant{}, err
		}
		return NewFloatVariant(kind, math.Float64frombits(v)), nil
	case Time, Duration:
		sec, err := c.readUint32()
		if err != nil {
			return Variant{}, err
		}
		nsec, err := c.readUint32()
		if err != nil {
			return Variant{}, err
		}
		return NewTimeVariant(kind, int64(int32(sec)), int64(int32(nsec))), nil
	default:
		return Variant{}, &ConversionOutOfRangeError{From: Other, To: kind}
	}
}

// readString reads a length-prefixed ROS string: a little-endian uint32
// byte count followed by that many raw bytes (no trailing NUL).
func (c *cursor) readString() (string, error) {
	n, err := c.readUint32()
	if err != nil {
		return "", err
	}
	if int(n) > c.remaining() {
		return "", &InvalidLengthError{Length: int(n), Remaining: c.remaining()}
	}
	b, err := c.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readDynamicLength reads the little-endian uint32 element-count prefix of
// a DYNAMIC array, failing with InvalidLengthError if the count exceeds the
// bytes remaining after the prefix.
func (c *cursor) readDynamicLength() (int, error) {
	n, err := c.readUint32()
	if err != nil {
		return 0, err
	}
	if int(n) > c.remaining() {
		return 0, &InvalidLengthError{Length: int(n), Remaining: c.remaining()}
	}
	return int(n), nil
}
