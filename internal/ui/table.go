package ui

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// Size renders a byte count in IEC units, e.g. "1.5 KiB".
func Size(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// YesNo renders a boolean column.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Table writes rows under header as an aligned table.
func Table(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
