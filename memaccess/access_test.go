package memaccess

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/wippyai/hexlayout/errors"
)

type mockImage struct {
	base uint64
	data []byte
}

func newMockImage(base uint64, data ...byte) *mockImage {
	return &mockImage{base: base, data: data}
}

func (m *mockImage) ByteAt(addr uint64) (byte, error) {
	if addr < m.base || addr-m.base >= uint64(len(m.data)) {
		return 0, errors.OutOfRange(errors.PhaseDecode, nil, addr)
	}
	return m.data[addr-m.base], nil
}

func mustLookup(t *testing.T, name string) Variant {
	t.Helper()
	v, ok := Lookup(name)
	if !ok {
		t.Fatalf("Lookup(%q) failed", name)
	}
	return v
}

func TestRead_Integers(t *testing.T) {
	img := newMockImage(0, 0x31, 0x32, 0x33, 0x34, 0x80, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)

	tests := []struct {
		typ     string
		addr    uint64
		wantRaw uint64
		wantInt int64
	}{
		{"uint32le", 0, 0x34333231, 0x34333231},
		{"uint32be", 0, 0x31323334, 0x31323334},
		{"uint16le", 0, 0x3231, 0x3231},
		{"uint16be", 0, 0x3132, 0x3132},
		{"uint8", 4, 0x80, 0x80},
		{"int8", 4, 0x80, -128},
		{"int16le", 4, 0xFF80, -128},
		{"int16be", 4, 0x80FF, -32513},
		{"int32be", 5, 0xFFFFFFFF, -1},
		{"int64le", 4, 0xFFFFFFFFFFFFFF80, -128},
		{"uint64be", 4, 0x80FFFFFFFFFFFFFF, int64(-0x7F00000000000001)},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			s, err := mustLookup(t, tt.typ).Bind(img).Read(tt.addr)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if s.Uint() != tt.wantRaw {
				t.Errorf("raw: got 0x%X, want 0x%X", s.Uint(), tt.wantRaw)
			}
			if s.Int() != tt.wantInt {
				t.Errorf("int: got %d, want %d", s.Int(), tt.wantInt)
			}
		})
	}
}

func TestRead_Float32RoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(1.2345))
	img := newMockImage(0x100, buf...)

	s, err := mustLookup(t, "float32le").Bind(img).Read(0x100)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if math.Abs(s.Float()-1.2345) > 1e-6 {
		t.Errorf("got %v, want 1.2345", s.Float())
	}
}

func TestRead_Float64BigEndian(t *testing.T) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(-2.5e10))
	img := newMockImage(0, buf...)

	s, err := mustLookup(t, "float64be").Bind(img).Read(0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if s.Float() != -2.5e10 {
		t.Errorf("got %v, want -2.5e10", s.Float())
	}
	if s.Hex("0x") != "0xC2174876E8000000" {
		t.Errorf("hex: got %s", s.Hex("0x"))
	}
}

func TestRead_OutOfRange(t *testing.T) {
	img := newMockImage(0x10, 1, 2, 3)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			_, err := mustLookup(t, name).Bind(img).Read(0x12)
			if name == "uint8" || name == "int8" || name == "utf8" {
				if err != nil {
					t.Fatalf("single byte read failed: %v", err)
				}
				_, err = mustLookup(t, name).Bind(img).Read(0x13)
			}
			if err == nil {
				t.Fatal("expected out of range error")
			}
			want := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindOutOfRange}
			if !want.Is(err.(*errors.Error)) {
				t.Errorf("got %v, want out_of_range", err)
			}
		})
	}
}

func TestRead_Unbound(t *testing.T) {
	v := mustLookup(t, "uint8")
	if _, err := v.Bind(nil).Read(0); err == nil {
		t.Fatal("expected error for unbound access")
	}
}

func TestScalar_Hex(t *testing.T) {
	img := newMockImage(0, 0xFE, 0xFF)

	s, err := mustLookup(t, "int16le").Bind(img).Read(0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if s.Int() != -2 {
		t.Errorf("int: got %d, want -2", s.Int())
	}
	if got := s.Hex("0x"); got != "0xFFFE" {
		t.Errorf("hex: got %s, want 0xFFFE", got)
	}
	if got := s.String(); got != "-2" {
		t.Errorf("string: got %s, want -2", got)
	}
}

func TestReadString(t *testing.T) {
	img := newMockImage(0, 'h', 'e', 'l', 'l', 'o', 0, 'x', 0xC3, 0xA4, 0)

	tests := []struct {
		name   string
		addr   uint64
		maxLen int
		want   string
	}{
		{"terminated", 0, 0, "hello"},
		{"bounded", 0, 3, "hel"},
		{"bound past terminator", 0, 32, "hello"},
		{"empty", 5, 8, ""},
		{"multibyte", 6, 0, "xä"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadString(img, tt.addr, tt.maxLen)
			if err != nil {
				t.Fatalf("ReadString failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadString_Errors(t *testing.T) {
	t.Run("unterminated", func(t *testing.T) {
		img := newMockImage(0, 'a', 'b')
		if _, err := ReadString(img, 0, 0); err == nil {
			t.Fatal("expected out of range error")
		}
	})

	t.Run("invalid utf8", func(t *testing.T) {
		img := newMockImage(0, 0xFF, 0xFE, 0)
		_, err := ReadString(img, 0, 0)
		if err == nil {
			t.Fatal("expected invalid utf8 error")
		}
		if e, ok := err.(*errors.Error); !ok || e.Kind != errors.KindInvalidUTF8 {
			t.Errorf("got %v, want invalid_utf8", err)
		}
	})
}

func TestLookup(t *testing.T) {
	v, ok := Lookup("s16be")
	if !ok {
		t.Fatal("alias s16be not found")
	}
	if v.Name != "int16be" || v.Category != Signed || v.Bits != 16 || v.Endian != BigEndian {
		t.Errorf("unexpected variant %+v", v)
	}

	if _, ok := Lookup("uint24le"); ok {
		t.Error("uint24le should not be a builtin")
	}

	for _, name := range Names() {
		v := mustLookup(t, name)
		if v.Bits%8 != 0 || v.Bits&(v.Bits-1) != 0 {
			t.Errorf("%s: width %d is not a power of two multiple of 8", name, v.Bits)
		}
		if v.Category == Float && v.Bits != 32 && v.Bits != 64 {
			t.Errorf("%s: float width %d", name, v.Bits)
		}
	}
}

func TestSwap(t *testing.T) {
	if got := SwapBytes16(0x1234); got != 0x3412 {
		t.Errorf("SwapBytes16: got 0x%X", got)
	}
	if got := SwapBytes32(0x11223344); got != 0x44332211 {
		t.Errorf("SwapBytes32: got 0x%X", got)
	}
	if got := SwapWords32(0xCCDDAABB); got != 0xAABBCCDD {
		t.Errorf("SwapWords32: got 0x%X", got)
	}
}
