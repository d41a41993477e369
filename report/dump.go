package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/wippyai/hexlayout/memaccess"
)

// Dump writes count values read through acc starting at addr, one line per
// lineBytes bytes:
//
//	08000000: 00 20 00 20 C1 01 00 08
//
// Addresses use 8 hex digits and values 2 digits per byte. A lineBytes of
// zero or less puts everything on one line.
func Dump(w io.Writer, acc *memaccess.Access, addr uint64, count, lineBytes int) error {
	size := acc.Size()
	if size == 0 {
		size = 1
	}
	perLine := count
	if lineBytes > 0 {
		perLine = lineBytes / size
		if perLine < 1 {
			perLine = 1
		}
	}

	bw := bufio.NewWriter(w)
	for start := 0; start < count; start += perLine {
		n := perLine
		if count-start < n {
			n = count - start
		}
		lineAddr := addr + uint64(start*size)
		fmt.Fprintf(bw, "%08X:", lineAddr)
		for i := 0; i < n; i++ {
			s, err := acc.Read(lineAddr + uint64(i*size))
			if err != nil {
				bw.Flush()
				return err
			}
			fmt.Fprintf(bw, " %0*X", 2*size, s.Raw)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
