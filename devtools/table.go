package devtools

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable writes the update history as a table.
func (d *Devtools) RenderTable(w io.Writer) {
	history := d.UpdateHistory()

	tbl := table.NewWriter()
	tbl.SetTitle("Signal Updates")
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"seq", "signal", "old", "new", "when"})
	for _, r := range history {
		tbl.AppendRow(table.Row{
			r.Seq,
			r.Name,
			fmt.Sprint(r.OldValue),
			fmt.Sprint(r.NewValue),
			humanize.Time(r.At),
		})
	}
	tbl.AppendFooter(table.Row{"", "", "", "total", humanize.Comma(int64(len(history)))})
	tbl.Render()
}
