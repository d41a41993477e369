package image

import (
	"sort"

	"github.com/wippyai/hexlayout"
	"github.com/wippyai/hexlayout/errors"
)

// Sparse is an address-indexed byte store made of sorted, non-overlapping
// segments. Adjacent and overlapping writes are merged; later writes win.
//
// A Sparse is safe for concurrent reads once it is no longer written.
type Sparse struct {
	segments []hexlayout.Segment
}

var (
	_ hexlayout.Image     = (*Sparse)(nil)
	_ hexlayout.Segmenter = (*Sparse)(nil)
)

// NewSparse creates an empty image.
func NewSparse() *Sparse {
	return &Sparse{}
}

// FromBytes creates an image holding data at base.
func FromBytes(base uint64, data []byte) *Sparse {
	s := NewSparse()
	s.Write(base, data)
	return s
}

// Write stores data at addr.
func (s *Sparse) Write(addr uint64, data []byte) {
	if len(data) == 0 {
		return
	}
	end := addr + uint64(len(data))

	// first segment that ends at or after addr, so adjacency counts as a touch
	i := sort.Search(len(s.segments), func(i int) bool {
		return s.segments[i].End() >= addr
	})

	// fast path: appending directly behind a segment without reaching the next one
	if i < len(s.segments) && s.segments[i].End() == addr &&
		(i+1 == len(s.segments) || s.segments[i+1].Addr > end) {
		s.segments[i].Data = append(s.segments[i].Data, data...)
		return
	}

	j := i
	for j < len(s.segments) && s.segments[j].Addr <= end {
		j++
	}

	if i == j {
		seg := hexlayout.Segment{Addr: addr, Data: append([]byte(nil), data...)}
		s.segments = append(s.segments, hexlayout.Segment{})
		copy(s.segments[i+1:], s.segments[i:])
		s.segments[i] = seg
		return
	}

	lo, hi := addr, end
	if s.segments[i].Addr < lo {
		lo = s.segments[i].Addr
	}
	if last := s.segments[j-1].End(); last > hi {
		hi = last
	}

	merged := make([]byte, hi-lo)
	for _, seg := range s.segments[i:j] {
		copy(merged[seg.Addr-lo:], seg.Data)
	}
	copy(merged[addr-lo:], data)

	s.segments[i] = hexlayout.Segment{Addr: lo, Data: merged}
	s.segments = append(s.segments[:i+1], s.segments[j:]...)
}

// ByteAt implements hexlayout.Image.
func (s *Sparse) ByteAt(addr uint64) (byte, error) {
	i := sort.Search(len(s.segments), func(i int) bool {
		return s.segments[i].End() > addr
	})
	if i < len(s.segments) && s.segments[i].Addr <= addr {
		seg := s.segments[i]
		return seg.Data[addr-seg.Addr], nil
	}
	return 0, errors.OutOfRange(errors.PhaseDecode, nil, addr)
}

// Segments implements hexlayout.Segmenter. The returned slice must not be modified.
func (s *Sparse) Segments() []hexlayout.Segment {
	return s.segments
}

// Len returns the number of populated bytes.
func (s *Sparse) Len() uint64 {
	var n uint64
	for _, seg := range s.segments {
		n += uint64(len(seg.Data))
	}
	return n
}

// Bounds returns the lowest populated address and the address one past the
// highest. Both are zero for an empty image.
func (s *Sparse) Bounds() (lo, hi uint64) {
	if len(s.segments) == 0 {
		return 0, 0
	}
	return s.segments[0].Addr, s.segments[len(s.segments)-1].End()
}
