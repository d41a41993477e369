// Package memaccess decodes fixed-width scalar values from a memory image.
//
// A Variant names one encoding: category (unsigned, signed, float, text byte),
// width (8, 16, 32 or 64 bits) and byte order. Builtin variants are looked up by
// the data type names used in layout documents:
//
//	Name        Category   Bits   Order
//	──────────────────────────────────────
//	uint8       unsigned   8      -
//	int8        signed     8      -
//	uint16le    unsigned   16     little
//	int32be     signed     32     big
//	float32le   float      32     little
//	float64be   float      64     big
//	utf8        text       8      -
//
// Integers are assembled byte by byte: the byte at addr+i is shifted by 8*i for
// little endian and by 8*(size-1-i) for big endian. Signed values subtract
// 2^bits when the top bit is set. Floats reinterpret the unsigned bit pattern as
// IEEE-754 without any numeric conversion.
//
// # Usage
//
//	v, _ := memaccess.Lookup("int16be")
//	s, err := v.Bind(img).Read(0x100)
//	if err != nil {
//	    return err // out_of_range when 0x100 or 0x101 is not populated
//	}
//	fmt.Println(s.Int(), s.Hex("0x"))
//
// Reads never substitute zero for a missing byte; every variant reports an
// out_of_range decode error instead.
package memaccess
