package memaccess

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/wippyai/hexlayout"
	"github.com/wippyai/hexlayout/errors"
)

// Scalar is one decoded value: the raw bit pattern as read from memory plus the
// variant that gives it meaning.
type Scalar struct {
	Raw     uint64
	Variant Variant
}

// Uint returns the unsigned bit pattern.
func (s Scalar) Uint() uint64 {
	return s.Raw
}

// Int returns the value as a signed integer. Signed variants are sign extended
// from their width; unsigned variants are returned as is.
func (s Scalar) Int() int64 {
	if s.Variant.Category != Signed || s.Variant.Bits >= 64 {
		return int64(s.Raw)
	}
	width := uint(s.Variant.Bits)
	if s.Raw&(1<<(width-1)) != 0 {
		return int64(s.Raw) - int64(1)<<width
	}
	return int64(s.Raw)
}

// Float returns the IEEE-754 value for float variants and the numeric value
// converted to float64 for integer variants.
func (s Scalar) Float() float64 {
	switch s.Variant.Category {
	case Float:
		if s.Variant.Bits == 32 {
			return float64(math.Float32frombits(uint32(s.Raw)))
		}
		return math.Float64frombits(s.Raw)
	case Signed:
		return float64(s.Int())
	default:
		return float64(s.Raw)
	}
}

// Hex formats the raw bit pattern, zero padded to width/4 digits.
func (s Scalar) Hex(prefix string) string {
	return fmt.Sprintf("%s%0*X", prefix, s.Variant.Bits/4, s.Raw)
}

func (s Scalar) String() string {
	switch s.Variant.Category {
	case Signed:
		return fmt.Sprintf("%d", s.Int())
	case Float:
		return fmt.Sprintf("%g", s.Float())
	case Text:
		return string(rune(s.Raw))
	default:
		return fmt.Sprintf("%d", s.Raw)
	}
}

// Access is a variant bound to an image.
type Access struct {
	img     hexlayout.Image
	variant Variant
}

// Bind returns an Access reading v from img.
func (v Variant) Bind(img hexlayout.Image) *Access {
	return &Access{img: img, variant: v}
}

// Variant returns the bound variant.
func (a *Access) Variant() Variant {
	return a.variant
}

// Size returns the width of one value in bytes.
func (a *Access) Size() int {
	return a.variant.Size()
}

// Read decodes one value at addr.
func (a *Access) Read(addr uint64) (Scalar, error) {
	raw, err := a.readRaw(addr)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{Raw: raw, Variant: a.variant}, nil
}

func (a *Access) readRaw(addr uint64) (uint64, error) {
	if a.img == nil {
		return 0, errors.Unsupported(errors.PhaseDecode, "access is not bound to an image")
	}
	size := a.variant.Size()
	if size == 0 {
		return 0, errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("zero width variant %q", a.variant.Name))
	}

	var value uint64
	for i := 0; i < size; i++ {
		b, err := a.byteAt(addr + uint64(i))
		if err != nil {
			return 0, err
		}
		pos := i
		if a.variant.Endian == BigEndian {
			pos = size - 1 - i
		}
		value |= uint64(b) << (8 * pos)
	}
	return value, nil
}

func (a *Access) byteAt(addr uint64) (byte, error) {
	b, err := a.img.ByteAt(addr)
	if err == nil {
		return b, nil
	}
	if e, ok := err.(*errors.Error); ok && e.Kind == errors.KindOutOfRange {
		return 0, e
	}
	return 0, errors.New(errors.PhaseDecode, errors.KindOutOfRange).
		DataType(a.variant.Name).
		Detail("address 0x%08X is not readable", addr).
		Value(addr).
		Cause(err).
		Build()
}

// ReadString reads bytes at increasing addresses until a zero byte is read or
// maxLen bytes have been collected, and decodes them as UTF-8. A maxLen of zero
// or less scans until the terminating zero byte.
func ReadString(img hexlayout.Image, addr uint64, maxLen int) (string, error) {
	acc := builtins["uint8"].Bind(img)

	var buf []byte
	for i := 0; maxLen <= 0 || i < maxLen; i++ {
		b, err := acc.readRaw(addr + uint64(i))
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
		buf = append(buf, byte(b))
	}

	if !utf8.Valid(buf) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, nil, buf)
	}
	return string(buf), nil
}
