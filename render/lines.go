package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/wippyai/hexlayout/report"
)

// Lines writes one "path @ address: value" line per report value.
type Lines struct {
	Hex bool
}

var _ Renderer = Lines{}

func (l Lines) Render(w io.Writer, r *report.Report) error {
	bw := bufio.NewWriter(w)
	for _, v := range r.List {
		fmt.Fprintf(bw, "%s @ %08X: %s\n", v.Path(), v.Addr(), formatValue(v, l.Hex))
	}
	return bw.Flush()
}

// Table writes the report values as a table.
type Table struct {
	Hex bool
}

var _ Renderer = Table{}

func (t Table) Render(w io.Writer, r *report.Report) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Path", "Address", "Type", "Value"})
	table.SetAutoWrapText(false)
	table.AppendBulk(lo.Map(r.List, func(v *report.Value, _ int) []string {
		typ := v.Type()
		if v.IsArray() {
			typ = fmt.Sprintf("%s[%d]", typ, v.Len())
		}
		return []string{v.Path(), fmt.Sprintf("0x%08X", v.Addr()), typ, formatValue(v, t.Hex)}
	}))
	table.Render()
	return nil
}

func formatValue(v *report.Value, hex bool) string {
	if hex && !v.IsText() {
		return v.Hex()
	}
	return v.String()
}
