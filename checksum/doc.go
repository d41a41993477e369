// Package checksum computes parameterized CRCs over a memory image.
//
// The algorithm is bit serial and table free. The register starts at the
// seed; every input byte is xored into its top byte and shifted out one bit
// at a time, xoring in the polynomial whenever a set bit leaves the register.
//
//	p := checksum.CRC32MPEG2
//	v, _ := memaccess.Lookup("uint32be")
//	crc, err := checksum.Compute(img, v, 0x08000000, 0x08004000, p)
//
// Widths of 8, 16, 32 and 64 bits are supported. Each word read through
// the access variant is fed most significant byte first.
package checksum
