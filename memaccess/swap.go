package memaccess

// SwapBytes16 swaps the bytes of a 16-bit value (little/big endian conversion).
func SwapBytes16(v uint64) uint64 {
	return (v&0x00FF)<<8 | (v&0xFF00)>>8
}

// SwapBytes32 reverses the bytes of a 32-bit value (little/big endian conversion).
func SwapBytes32(v uint64) uint64 {
	return (v&0x000000FF)<<24 |
		(v&0x0000FF00)<<8 |
		(v&0x00FF0000)>>8 |
		(v&0xFF000000)>>24
}

// SwapWords32 swaps the 16-bit halves of a 32-bit value (little/middle endian
// conversion). Convert big endian values with SwapBytes32 first.
func SwapWords32(v uint64) uint64 {
	return (v&0x0000FFFF)<<16 | (v&0xFFFF0000)>>16
}
