package config

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Number is an integer field that accepts plain integers or strings with a
// base prefix ("0x1F", "0b101", "0o17", "42"). The magnitude covers the full
// uint64 range so that any 64-bit address can be written.
//
// A value that is not an integer (a float, a bool, an unparsable string, a
// list) does not fail decoding. It is kept in Invalid and the layout
// resolver reports it for the one element it belongs to.
type Number struct {
	Value    uint64 // magnitude
	Negative bool
	Invalid  string // raw text of a non-integer value
}

// Valid reports whether the value decoded as an integer.
func (n Number) Valid() bool {
	return n.Invalid == ""
}

// Uint returns the value when it is a valid non-negative integer.
func (n Number) Uint() (uint64, bool) {
	if !n.Valid() || n.Negative {
		return 0, false
	}
	return n.Value, true
}

// Int returns the value as int64. It reports false for invalid values and
// for magnitudes outside the int64 range.
func (n Number) Int() (int64, bool) {
	if !n.Valid() {
		return 0, false
	}
	if n.Negative {
		if n.Value > 1<<63 {
			return 0, false
		}
		return -int64(n.Value), true
	}
	if n.Value > math.MaxInt64 {
		return 0, false
	}
	return int64(n.Value), true
}

func (n Number) String() string {
	switch {
	case !n.Valid():
		return n.Invalid
	case n.Negative:
		return "-" + strconv.FormatUint(n.Value, 10)
	default:
		return strconv.FormatUint(n.Value, 10)
	}
}

// ParseNumber parses s with the same rules as a quoted document number.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	digits := s
	neg := false
	switch {
	case strings.HasPrefix(digits, "-"):
		neg = true
		digits = digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}
	// a bare leading zero is ambiguous (octal in some tools, decimal in others)
	if len(digits) > 1 && digits[0] == '0' && digits[1] >= '0' && digits[1] <= '9' {
		return Number{}, fmt.Errorf("invalid number %q: leading zero", s)
	}
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return Number{}, fmt.Errorf("invalid number %q", s)
	}
	v, err := strconv.ParseUint(digits, 0, 64)
	if err != nil {
		return Number{}, fmt.Errorf("invalid number %q", s)
	}
	return Number{Value: v, Negative: neg && v != 0}, nil
}

// lenientNumber parses s, keeping it as an invalid value when it is not an
// integer.
func lenientNumber(s string) Number {
	n, err := ParseNumber(s)
	if err != nil {
		return Number{Invalid: s}
	}
	return n
}

// UnmarshalJSON accepts a JSON integer or string. Any other value is kept
// as invalid.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = lenientNumber(s)
		return nil
	}
	// JSON literals are decimal; a leading zero is not valid JSON anyway
	*n = lenientNumber(string(data))
	return nil
}

// UnmarshalYAML accepts a YAML integer or string scalar. Any other value is
// kept as invalid.
func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		*n = Number{Invalid: nodeText(value)}
		return nil
	}
	*n = lenientNumber(value.Value)
	return nil
}

// nodeText describes a YAML node for diagnostics.
func nodeText(value *yaml.Node) string {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Value
	case yaml.SequenceNode:
		return fmt.Sprintf("<list at line %d>", value.Line)
	case yaml.MappingNode:
		return fmt.Sprintf("<mapping at line %d>", value.Line)
	default:
		return fmt.Sprintf("<node at line %d>", value.Line)
	}
}
