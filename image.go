package hexlayout

// Image represents a read-only, byte addressable memory image
type Image interface {
	// ByteAt returns the byte stored at addr. Unpopulated addresses are an error,
	// never a zero byte.
	ByteAt(addr uint64) (byte, error)
}

// Segment is a contiguous populated range of an image.
type Segment struct {
	Addr uint64
	Data []byte
}

// End returns the address immediately after the last byte of the segment.
func (s Segment) End() uint64 {
	return s.Addr + uint64(len(s.Data))
}

// Segmenter lists the populated ranges of an image in ascending address order.
type Segmenter interface {
	Segments() []Segment
}
