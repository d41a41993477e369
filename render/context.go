package render

import (
	"fmt"
	"text/template"

	"github.com/wippyai/hexlayout"
	"github.com/wippyai/hexlayout/checksum"
	"github.com/wippyai/hexlayout/errors"
	"github.com/wippyai/hexlayout/memaccess"
	"github.com/wippyai/hexlayout/report"
)

// readHelpers are the typed read helpers, exposed as m_read_<name>.
var readHelpers = []string{
	"u8", "u16le", "u16be", "u32le", "u32be", "u64le", "u64be",
	"s8", "s16le", "s16be", "s32le", "s32be", "s64le", "s64be",
	"float32le", "float32be", "float64le", "float64be",
}

// Context binds the helper functions of a template to one image and one
// report. Every render creates its own Context; nothing is shared between
// renders.
type Context struct {
	img hexlayout.Image
	rep *report.Report
}

// NewContext creates a helper context. rep may be nil when only the image
// helpers are needed.
func NewContext(img hexlayout.Image, rep *report.Report) *Context {
	return &Context{img: img, rep: rep}
}

// Read decodes one value of the named type at addr.
func (c *Context) Read(typeName string, addr uint64) (memaccess.Scalar, error) {
	v, ok := memaccess.Lookup(typeName)
	if !ok || v.Category == memaccess.Text {
		return memaccess.Scalar{}, errors.Unsupported(errors.PhaseRender, fmt.Sprintf("read of type %q", typeName))
	}
	return v.Bind(c.img).Read(addr)
}

// ReadString reads a zero-terminated UTF-8 string at addr.
func (c *Context) ReadString(addr uint64) (string, error) {
	return memaccess.ReadString(c.img, addr, 0)
}

// Checksum computes a CRC over [start, end) read as words of typeName.
func (c *Context) Checksum(typeName string, start, end uint64, p checksum.Params) (uint64, error) {
	v, ok := memaccess.Lookup(typeName)
	if !ok {
		return 0, errors.InvalidParam(errors.PhaseChecksum, "unknown access type %q", typeName)
	}
	return checksum.Compute(c.img, v, start, end, p)
}

// Lookup returns the report value at path.
func (c *Context) Lookup(path string) (*report.Value, error) {
	if c.rep == nil {
		return nil, errors.NotFound(errors.PhaseRender, "value", path)
	}
	return c.rep.Value(path)
}

// Elements returns every report value in depth-first order.
func (c *Context) Elements() []*report.Value {
	if c.rep == nil {
		return nil
	}
	return c.rep.List
}

// FuncMap returns the template helpers bound to c.
func (c *Context) FuncMap() template.FuncMap {
	fm := template.FuncMap{
		"m_read_string":         c.readString,
		"m_calc_checksum":       c.calcChecksum,
		"m_swap_bytes_u16":      swap(memaccess.SwapBytes16),
		"m_swap_bytes_u32":      swap(memaccess.SwapBytes32),
		"m_swap_words_u32":      swap(memaccess.SwapWords32),
		"macros_compare_values": compareValues,
		"lookup":                c.Lookup,
		"elements":              c.Elements,
		"config_elements":       c.Elements,
	}
	for _, name := range readHelpers {
		fm["m_read_"+name] = c.reader(name)
	}
	return fm
}

func (c *Context) reader(typeName string) func(addr any) (any, error) {
	return func(addr any) (any, error) {
		a, err := toUint64(addr)
		if err != nil {
			return nil, err
		}
		s, err := c.Read(typeName, a)
		if err != nil {
			return nil, err
		}
		switch s.Variant.Category {
		case memaccess.Signed:
			return s.Int(), nil
		case memaccess.Float:
			return s.Float(), nil
		default:
			return s.Uint(), nil
		}
	}
}

func (c *Context) readString(addr any) (string, error) {
	a, err := toUint64(addr)
	if err != nil {
		return "", err
	}
	return c.ReadString(a)
}

func (c *Context) calcChecksum(typeName string, start, end, poly, width, seed any, reflectIn, reflectOut, finalXor bool) (uint64, error) {
	nums := make([]uint64, 5)
	for i, v := range []any{start, end, poly, width, seed} {
		n, err := toUint64(v)
		if err != nil {
			return 0, err
		}
		nums[i] = n
	}
	p := checksum.Params{
		Polynomial: nums[2],
		Width:      int(nums[3]),
		Seed:       nums[4],
		ReflectIn:  reflectIn,
		ReflectOut: reflectOut,
		FinalXor:   finalXor,
	}
	return c.Checksum(typeName, nums[0], nums[1], p)
}

func swap(fn func(uint64) uint64) func(v any) (uint64, error) {
	return func(v any) (uint64, error) {
		n, err := toUint64(v)
		if err != nil {
			return 0, err
		}
		return fn(n), nil
	}
}

// compareValues returns "Ok" when both values are equal and
// "Not Ok (Set: <set>, Actual: <actual>)" otherwise. Values are formatted
// with format, "%02X" by default.
func compareValues(set, actual any, format ...string) (string, error) {
	s, err := toUint64(set)
	if err != nil {
		return "", err
	}
	a, err := toUint64(actual)
	if err != nil {
		return "", err
	}
	if s == a {
		return "Ok", nil
	}
	f := "%02X"
	if len(format) > 0 {
		f = format[0]
	}
	return fmt.Sprintf("Not Ok (Set: "+f+", Actual: "+f+")", s, a), nil
}

// toUint64 converts template arguments to an address or integer operand.
// Negative signed values keep their two's complement bit pattern.
func toUint64(v any) (uint64, error) {
	switch n := v.(type) {
	case int:
		return uint64(n), nil
	case int8:
		return uint64(n), nil
	case int16:
		return uint64(n), nil
	case int32:
		return uint64(n), nil
	case int64:
		return uint64(n), nil
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case *report.Value:
		return n.Uint()
	case memaccess.Scalar:
		return n.Uint(), nil
	default:
		return 0, errors.New(errors.PhaseRender, errors.KindTypeMismatch).
			Detail("expected an integer, got %T", v).
			Value(v).
			Build()
	}
}
