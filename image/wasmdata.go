package image

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/hexlayout/errors"
)

// WebAssembly binary constants used when reading data segments.
const (
	wasmMagic       = "\x00asm"
	wasmVersion     = 1
	wasmSectionData = 11
	wasmOpI32Const  = 0x41
	wasmOpI64Const  = 0x42
	wasmOpEnd       = 0x0B
)

var errLEBOverflow = stderrors.New("leb128: overflow")

// ParseWasmData builds the initial linear memory image of a WebAssembly
// module from its active data segments for memory 0. Passive segments,
// segments for other memories and segments whose offset is not a constant
// expression are skipped. Nothing is instantiated.
func ParseWasmData(r io.Reader) (*Sparse, error) {
	br := bufio.NewReader(r)

	header := make([]byte, 8)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, malformedWasm("header", err)
	}
	if string(header[:4]) != wasmMagic {
		return nil, malformedWasm(fmt.Sprintf("bad magic %x", header[:4]), nil)
	}
	if v := uint32(header[4]) | uint32(header[5])<<8 | uint32(header[6])<<16 | uint32(header[7])<<24; v != wasmVersion {
		return nil, malformedWasm(fmt.Sprintf("unsupported version %d", v), nil)
	}

	img := NewSparse()
	for {
		id, err := br.ReadByte()
		if err == io.EOF {
			return img, nil
		}
		if err != nil {
			return nil, malformedWasm("section id", err)
		}
		size, err := readLEB128u(br)
		if err != nil {
			return nil, malformedWasm("section size", err)
		}
		body := make([]byte, size)
		if _, err := io.ReadFull(br, body); err != nil {
			return nil, malformedWasm(fmt.Sprintf("section %d body", id), err)
		}
		if id != wasmSectionData {
			continue
		}
		if err := readDataSegments(bytes.NewReader(body), img); err != nil {
			return nil, err
		}
	}
}

func readDataSegments(r *bytes.Reader, img *Sparse) error {
	count, err := readLEB128u(r)
	if err != nil {
		return malformedWasm("data segment count", err)
	}
	for i := uint32(0); i < count; i++ {
		flags, err := readLEB128u(r)
		if err != nil {
			return malformedWasm("data segment flags", err)
		}
		if flags > 2 {
			return malformedWasm(fmt.Sprintf("data segment %d: invalid flags %d", i, flags), nil)
		}

		var memIdx uint32
		if flags == 2 {
			if memIdx, err = readLEB128u(r); err != nil {
				return malformedWasm("data segment memory index", err)
			}
		}

		var (
			offset uint64
			isConst = true
		)
		if flags != 1 {
			offset, isConst, err = readOffsetExpr(r)
			if err != nil {
				return malformedWasm(fmt.Sprintf("data segment %d offset", i), err)
			}
		}

		n, err := readLEB128u(r)
		if err != nil {
			return malformedWasm("data segment length", err)
		}
		init := make([]byte, n)
		if _, err := io.ReadFull(r, init); err != nil {
			return malformedWasm(fmt.Sprintf("data segment %d bytes", i), err)
		}

		switch {
		case flags == 1:
			continue
		case memIdx != 0 || !isConst:
			Logger().Warn("skipping data segment",
				zap.Uint32("segment", i),
				zap.Uint32("memory", memIdx),
				zap.Bool("constant_offset", isConst))
			continue
		}
		img.Write(offset, init)
	}
	return nil
}

// readOffsetExpr reads a constant expression. Only i32.const and i64.const
// yield an address; any other expression is consumed up to its end opcode
// and reported as non-constant.
func readOffsetExpr(r *bytes.Reader) (uint64, bool, error) {
	op, err := r.ReadByte()
	if err != nil {
		return 0, false, err
	}

	var offset uint64
	isConst := true
	switch op {
	case wasmOpI32Const:
		v, err := readLEB128s(r, 32)
		if err != nil {
			return 0, false, err
		}
		offset = uint64(uint32(v))
	case wasmOpI64Const:
		v, err := readLEB128s(r, 64)
		if err != nil {
			return 0, false, err
		}
		offset = uint64(v)
	default:
		isConst = false
		if op == wasmOpEnd {
			return 0, false, nil
		}
		for {
			b, err := r.ReadByte()
			if err != nil {
				return 0, false, err
			}
			if b == wasmOpEnd {
				return 0, false, nil
			}
		}
	}

	end, err := r.ReadByte()
	if err != nil {
		return 0, false, err
	}
	if end != wasmOpEnd {
		return 0, false, fmt.Errorf("expected end opcode, got 0x%02X", end)
	}
	return offset, isConst, nil
}

func readLEB128u(r io.ByteReader) (uint32, error) {
	var result uint32
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, errLEBOverflow
		}
	}
}

func readLEB128s(r io.ByteReader, bits uint) (int64, error) {
	var result int64
	var shift uint
	var b byte
	var err error
	for {
		b, err = r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
		if shift >= bits+7 {
			return 0, errLEBOverflow
		}
	}
	if shift < 64 && b&0x40 != 0 {
		result |= ^int64(0) << shift
	}
	return result, nil
}

func malformedWasm(msg string, cause error) error {
	return errors.New(errors.PhaseParse, errors.KindMalformed).
		Detail("wasm module: %s", msg).
		Cause(cause).
		Build()
}
