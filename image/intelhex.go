package image

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"io"

	"github.com/wippyai/hexlayout/errors"
)

// Intel HEX record types
const (
	recData                   = 0x00
	recEOF                    = 0x01
	recExtendedSegmentAddress = 0x02
	recStartSegmentAddress    = 0x03
	recExtendedLinearAddress  = 0x04
	recStartLinearAddress     = 0x05
)

// ParseIntelHex reads an Intel HEX stream into a sparse image.
// Start address records are accepted and ignored. Reading stops at the EOF
// record; a stream without one is accepted.
func ParseIntelHex(r io.Reader) (*Sparse, error) {
	img := NewSparse()
	var base uint64

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 1<<20)

	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		if text[0] != ':' {
			return nil, malformedRecord(line, "missing start code", nil)
		}

		rec := make([]byte, hex.DecodedLen(len(text)-1))
		if _, err := hex.Decode(rec, text[1:]); err != nil {
			return nil, malformedRecord(line, "invalid hex digits", err)
		}
		if len(rec) < 5 {
			return nil, malformedRecord(line, "record too short", nil)
		}

		count := int(rec[0])
		if len(rec) != count+5 {
			return nil, malformedRecord(line, "byte count does not match record length", nil)
		}

		var sum byte
		for _, b := range rec {
			sum += b
		}
		if sum != 0 {
			return nil, malformedRecord(line, "checksum mismatch", nil)
		}

		offset := uint64(rec[1])<<8 | uint64(rec[2])
		data := rec[4 : 4+count]

		switch rec[3] {
		case recData:
			img.Write(base+offset, data)
		case recEOF:
			return img, nil
		case recExtendedSegmentAddress:
			if count != 2 {
				return nil, malformedRecord(line, "extended segment address needs 2 data bytes", nil)
			}
			base = (uint64(data[0])<<8 | uint64(data[1])) << 4
		case recExtendedLinearAddress:
			if count != 2 {
				return nil, malformedRecord(line, "extended linear address needs 2 data bytes", nil)
			}
			base = (uint64(data[0])<<8 | uint64(data[1])) << 16
		case recStartSegmentAddress, recStartLinearAddress:
			if count != 4 {
				return nil, malformedRecord(line, "start address needs 4 data bytes", nil)
			}
		default:
			return nil, malformedRecord(line, "unknown record type", nil)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Malformed("intel hex", err)
	}
	return img, nil
}

func malformedRecord(line int, msg string, cause error) *errors.Error {
	return errors.New(errors.PhaseParse, errors.KindMalformed).
		Detail("intel hex line %d: %s", line, msg).
		Value(line).
		Cause(cause).
		Build()
}
