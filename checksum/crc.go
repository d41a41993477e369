package checksum

import (
	"math/bits"
	"sort"

	"github.com/wippyai/hexlayout"
	"github.com/wippyai/hexlayout/errors"
	"github.com/wippyai/hexlayout/memaccess"
)

// Params describes one CRC parameterization.
type Params struct {
	Polynomial uint64 // without the implicit top bit
	Seed       uint64
	Width      int
	ReflectIn  bool
	ReflectOut bool
	FinalXor   bool // xor the result with an all-ones mask of Width bits
}

// Common parameter sets
var (
	CRC8            = Params{Polynomial: 0x07, Width: 8}
	CRC16CCITTFalse = Params{Polynomial: 0x1021, Width: 16, Seed: 0xFFFF}
	CRC32MPEG2      = Params{Polynomial: 0x04C11DB7, Width: 32, Seed: 0xFFFFFFFF}
	CRC32           = Params{Polynomial: 0x04C11DB7, Width: 32, Seed: 0xFFFFFFFF, ReflectIn: true, ReflectOut: true, FinalXor: true}
)

var presets = map[string]Params{
	"crc8":              CRC8,
	"crc16-ccitt-false": CRC16CCITTFalse,
	"crc32-mpeg2":       CRC32MPEG2,
	"crc32":             CRC32,
}

// Preset returns a named parameter set.
func Preset(name string) (Params, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p Params) mask() uint64 {
	if p.Width == 64 {
		return ^uint64(0)
	}
	return uint64(1)<<p.Width - 1
}

// Validate checks the width and that the polynomial fits in it.
func (p Params) Validate() error {
	switch p.Width {
	case 8, 16, 32, 64:
	default:
		return errors.InvalidParam(errors.PhaseChecksum, "unsupported width %d, want 8, 16, 32 or 64", p.Width)
	}
	if p.Polynomial&^p.mask() != 0 {
		return errors.InvalidParam(errors.PhaseChecksum, "polynomial 0x%X does not fit in %d bits", p.Polynomial, p.Width)
	}
	return nil
}

// Compute calculates a bit-serial CRC over [start, end) of img.
//
// The range is read as words of the given unsigned variant. Each word is fed
// most significant byte first, so a big-endian variant sees the bytes in
// memory order and a little-endian one sees each word reversed.
func Compute(img hexlayout.Image, variant memaccess.Variant, start, end uint64, p Params) (uint64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if variant.IsZero() {
		return 0, errors.InvalidParam(errors.PhaseChecksum, "access type is not set")
	}
	if variant.Category != memaccess.Unsigned {
		return 0, errors.InvalidParam(errors.PhaseChecksum, "access type %q is not an unsigned integer", variant.Name)
	}
	if end < start {
		return 0, errors.InvalidParam(errors.PhaseChecksum, "end 0x%X lies before start 0x%X", end, start)
	}
	size := uint64(variant.Size())
	if (end-start)%size != 0 {
		return 0, errors.InvalidParam(errors.PhaseChecksum,
			"range 0x%X..0x%X is not a multiple of the %d byte word size", start, end, size)
	}

	mask := p.mask()
	top := uint64(1) << (p.Width - 1)
	crc := p.Seed & mask

	acc := variant.Bind(img)
	for addr := start; addr < end; addr += size {
		s, err := acc.Read(addr)
		if err != nil {
			return 0, err
		}
		for i := int(size) - 1; i >= 0; i-- {
			b := byte(s.Raw >> (8 * i))
			if p.ReflectIn {
				b = bits.Reverse8(b)
			}
			crc ^= uint64(b) << (p.Width - 8)
			for range 8 {
				if crc&top != 0 {
					crc = crc<<1 ^ p.Polynomial
				} else {
					crc <<= 1
				}
			}
			crc &= mask
		}
	}

	if p.ReflectOut {
		crc = bits.Reverse64(crc) >> (64 - p.Width)
	}
	if p.FinalXor {
		crc ^= mask
	}
	return crc, nil
}
