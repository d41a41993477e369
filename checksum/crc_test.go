package checksum

import (
	"hash/crc32"
	"testing"

	"github.com/wippyai/hexlayout/errors"
	"github.com/wippyai/hexlayout/image"
	"github.com/wippyai/hexlayout/memaccess"
)

func variant(t *testing.T, name string) memaccess.Variant {
	t.Helper()
	v, ok := memaccess.Lookup(name)
	if !ok {
		t.Fatalf("unknown variant %s", name)
	}
	return v
}

func TestCompute(t *testing.T) {
	digits8 := image.FromBytes(0x1000, []byte("12345678"))
	digits9 := image.FromBytes(0x1000, []byte("123456789"))

	tests := []struct {
		name   string
		img    *image.Sparse
		access string
		end    uint64
		params Params
		want   uint64
	}{
		{"crc8 plain", digits8, "uint8", 0x1008, Params{Polynomial: 0x07, Width: 8}, 0xC7},
		{"crc8 reflect out", digits8, "uint8", 0x1008, Params{Polynomial: 0x07, Width: 8, ReflectOut: true}, 0xE3},
		{"crc8 final xor", digits8, "uint8", 0x1008, Params{Polynomial: 0x07, Width: 8, FinalXor: true}, 0x38},
		{"crc8 reflect in", digits8, "uint8", 0x1008, Params{Polynomial: 0x07, Width: 8, ReflectIn: true}, 0xF1},
		{"crc32 final xor", digits8, "uint8", 0x1008, Params{Polynomial: 0x04C11DB7, Width: 32, Seed: 0xFFFFFFFF, FinalXor: true}, 0xB61C3D04},
		{"crc32 big endian words", digits8, "uint32be", 0x1008, Params{Polynomial: 0x04C11DB7, Width: 32, Seed: 0xFFFFFFFF, FinalXor: true}, 0xB61C3D04},
		{"crc8 check", digits9, "uint8", 0x1009, CRC8, 0xF4},
		{"crc16 ccitt-false check", digits9, "uint8", 0x1009, CRC16CCITTFalse, 0x29B1},
		{"crc32 mpeg2 check", digits9, "uint8", 0x1009, CRC32MPEG2, 0x0376E6E7},
		{"crc32 check", digits9, "uint8", 0x1009, CRC32, 0xCBF43926},
		{"empty range", digits8, "uint8", 0x1000, CRC16CCITTFalse, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.img, variant(t, tt.access), 0x1000, tt.end, tt.params)
			if err != nil {
				t.Fatalf("Compute failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got 0x%X, want 0x%X", got, tt.want)
			}
		})
	}
}

func TestCompute_MatchesHashCRC32(t *testing.T) {
	data := []byte("The quick brown fox jumps over the lazy dog")
	img := image.FromBytes(0, data)

	got, err := Compute(img, variant(t, "uint8"), 0, uint64(len(data)), CRC32)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if want := uint64(crc32.ChecksumIEEE(data)); got != want {
		t.Errorf("got 0x%08X, want 0x%08X", got, want)
	}
}

func TestCompute_LittleEndianWordsReverseBytes(t *testing.T) {
	le := image.FromBytes(0, []byte{0x34, 0x33, 0x32, 0x31, 0x38, 0x37, 0x36, 0x35})

	got, err := Compute(le, variant(t, "uint32le"), 0, 8, CRC8)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if got != 0xC7 {
		t.Errorf("got 0x%X, want 0xC7", got)
	}
}

func TestCompute_Width64(t *testing.T) {
	img := image.FromBytes(0, []byte("123456789"))
	// CRC-64/ECMA-182
	p := Params{Polynomial: 0x42F0E1EBA9EA3693, Width: 64}

	got, err := Compute(img, variant(t, "uint8"), 0, 9, p)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if got != 0x6C40DF5F0B497347 {
		t.Errorf("got 0x%X, want 0x6C40DF5F0B497347", got)
	}
}

func TestCompute_Errors(t *testing.T) {
	img := image.FromBytes(0, []byte("12345678"))

	tests := []struct {
		name   string
		access string
		start  uint64
		end    uint64
		params Params
		kind   errors.Kind
	}{
		{"width 12", "uint8", 0, 8, Params{Polynomial: 0x80F, Width: 12}, errors.KindInvalidParam},
		{"width 0", "uint8", 0, 8, Params{}, errors.KindInvalidParam},
		{"polynomial too wide", "uint8", 0, 8, Params{Polynomial: 0x107, Width: 8}, errors.KindInvalidParam},
		{"partial word", "uint32le", 0, 6, CRC8, errors.KindInvalidParam},
		{"signed access", "int8", 0, 8, CRC8, errors.KindInvalidParam},
		{"float access", "float32le", 0, 8, CRC8, errors.KindInvalidParam},
		{"reversed range", "uint8", 8, 0, CRC8, errors.KindInvalidParam},
		{"unpopulated", "uint8", 0, 9, CRC8, errors.KindOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(img, variant(t, tt.access), tt.start, tt.end, tt.params)
			if err == nil {
				t.Fatal("expected error")
			}
			e, ok := err.(*errors.Error)
			if !ok || e.Kind != tt.kind {
				t.Errorf("got %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestCompute_UnsetAccessType(t *testing.T) {
	img := image.FromBytes(0, []byte("1234"))
	for _, end := range []uint64{0, 4} {
		_, err := Compute(img, memaccess.Variant{}, 0, end, CRC32)
		e, ok := err.(*errors.Error)
		if !ok || e.Kind != errors.KindInvalidParam || e.Phase != errors.PhaseChecksum {
			t.Errorf("end %d: got %v, want checksum invalid_param", end, err)
		}
	}
}

func TestPreset(t *testing.T) {
	for _, name := range PresetNames() {
		p, ok := Preset(name)
		if !ok {
			t.Fatalf("preset %s missing", name)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
	if _, ok := Preset("crc7"); ok {
		t.Error("crc7 should not be a preset")
	}
}
