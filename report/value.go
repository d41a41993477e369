package report

import (
	"fmt"
	"strings"

	"github.com/wippyai/hexlayout/errors"
	"github.com/wippyai/hexlayout/memaccess"
)

// Value is one decoded leaf: a scalar, an array of scalars or a string.
// Values never convert implicitly; use the accessor that matches Kind.
type Value struct {
	name    string
	path    string
	variant memaccess.Variant
	scalars []memaccess.Scalar
	text    string
	raw     []byte
	addr    uint64
	array   bool
}

// Name returns the field name.
func (v *Value) Name() string { return v.name }

// Path returns the dotted, index-qualified path, for example "table[1].id".
func (v *Value) Path() string { return v.path }

// Addr returns the address of the first byte.
func (v *Value) Addr() uint64 { return v.addr }

// Bits returns the width of one element in bits.
func (v *Value) Bits() int { return v.variant.Bits }

// Type returns the builtin type name.
func (v *Value) Type() string { return v.variant.Name }

// Kind returns the category of the decoded elements.
func (v *Value) Kind() memaccess.Category { return v.variant.Category }

// IsArray reports whether the value holds more than one scalar.
func (v *Value) IsArray() bool { return v.array }

// IsText reports whether the value is a string.
func (v *Value) IsText() bool { return v.variant.Category == memaccess.Text }

// Len returns the number of elements of an array, the byte length of a
// string, or 1 for a scalar.
func (v *Value) Len() int {
	if v.IsText() {
		return len(v.raw)
	}
	return len(v.scalars)
}

func (v *Value) scalar(want string) (memaccess.Scalar, error) {
	if v.array || v.IsText() {
		return memaccess.Scalar{}, v.mismatch(want)
	}
	return v.scalars[0], nil
}

func (v *Value) mismatch(want string) error {
	return errors.TypeMismatch(errors.PhaseRender, []string{v.path}, v.variant.Name, want)
}

// Int returns an integer scalar as int64. Unsigned 64-bit values above
// MaxInt64 wrap; use Uint for those.
func (v *Value) Int() (int64, error) {
	s, err := v.scalar("an integer")
	if err != nil {
		return 0, err
	}
	if !s.Variant.Category.IsInteger() {
		return 0, v.mismatch("an integer")
	}
	return s.Int(), nil
}

// Uint returns the bit pattern of an integer scalar.
func (v *Value) Uint() (uint64, error) {
	s, err := v.scalar("an integer")
	if err != nil {
		return 0, err
	}
	if !s.Variant.Category.IsInteger() {
		return 0, v.mismatch("an integer")
	}
	return s.Uint(), nil
}

// Float returns a numeric scalar as float64.
func (v *Value) Float() (float64, error) {
	s, err := v.scalar("a number")
	if err != nil {
		return 0, err
	}
	return s.Float(), nil
}

// Text returns the decoded string of a text value.
func (v *Value) Text() (string, error) {
	if !v.IsText() {
		return "", v.mismatch("text")
	}
	return v.text, nil
}

// Index returns element i of an array as a scalar value.
func (v *Value) Index(i int) (*Value, error) {
	if !v.array || v.IsText() {
		return nil, v.mismatch("an array")
	}
	if i < 0 || i >= len(v.scalars) {
		return nil, errors.New(errors.PhaseRender, errors.KindInvalidParam).
			Path(v.path).
			Detail("index %d out of bounds [0, %d)", i, len(v.scalars)).
			Value(i).
			Build()
	}
	return v.element(i), nil
}

func (v *Value) element(i int) *Value {
	return &Value{
		name:    fmt.Sprintf("%s[%d]", v.name, i),
		path:    fmt.Sprintf("%s[%d]", v.path, i),
		variant: v.variant,
		scalars: v.scalars[i : i+1],
		addr:    v.addr + uint64(i*v.variant.Size()),
	}
}

// Elements returns the elements of an array, or the value itself for a
// scalar or a string.
func (v *Value) Elements() []*Value {
	if !v.array || v.IsText() {
		return []*Value{v}
	}
	out := make([]*Value, len(v.scalars))
	for i := range v.scalars {
		out[i] = v.element(i)
	}
	return out
}

// Hex formats the value with a 0x prefix. See HexPrefix.
func (v *Value) Hex() string {
	return v.HexPrefix("0x")
}

// HexPrefix formats scalars as zero padded hex of width Bits()/4, with the
// two's complement pattern for negative integers and the IEEE-754 pattern
// for floats. Arrays and strings are rendered as "[a, b, ...]", strings
// byte by byte.
func (v *Value) HexPrefix(prefix string) string {
	if v.IsText() {
		parts := make([]string, len(v.raw))
		for i, b := range v.raw {
			parts[i] = fmt.Sprintf("%s%02X", prefix, b)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	if !v.array {
		return v.scalars[0].Hex(prefix)
	}
	parts := make([]string, len(v.scalars))
	for i, s := range v.scalars {
		parts[i] = s.Hex(prefix)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v *Value) String() string {
	if v.IsText() {
		return v.text
	}
	if !v.array {
		return v.scalars[0].String()
	}
	parts := make([]string, len(v.scalars))
	for i, s := range v.scalars {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
