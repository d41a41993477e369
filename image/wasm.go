package image

import (
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/hexlayout"
	"github.com/wippyai/hexlayout/errors"
)

// WasmMemory exposes the linear memory of a WebAssembly instance as a
// read-only image. Addresses are offsets into linear memory.
type WasmMemory struct {
	mem api.Memory
}

var (
	_ hexlayout.Image     = (*WasmMemory)(nil)
	_ hexlayout.Segmenter = (*WasmMemory)(nil)
)

// NewWasmMemory wraps mem.
func NewWasmMemory(mem api.Memory) *WasmMemory {
	return &WasmMemory{mem: mem}
}

// ByteAt implements hexlayout.Image.
func (m *WasmMemory) ByteAt(addr uint64) (byte, error) {
	if addr > math.MaxUint32 {
		return 0, errors.OutOfRange(errors.PhaseDecode, nil, addr)
	}
	b, ok := m.mem.ReadByte(uint32(addr))
	if !ok {
		return 0, errors.OutOfRange(errors.PhaseDecode, nil, addr)
	}
	return b, nil
}

// Segments reports linear memory as one segment at address zero. The data
// is a view that changes when the guest writes to memory.
func (m *WasmMemory) Segments() []hexlayout.Segment {
	size := m.mem.Size()
	if size == 0 {
		return nil
	}
	data, ok := m.mem.Read(0, size)
	if !ok {
		return nil
	}
	return []hexlayout.Segment{{Addr: 0, Data: data}}
}
