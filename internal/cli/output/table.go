package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Listing column minimum widths; keeps the table layout stable even
// for short values.
const (
	emailColWidth  = 40
	roleColWidth   = 10
	statusColWidth = 15
)

// PrintTable writes headers and rows as a borderless left-aligned table.
func PrintTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	if len(headers) == 4 {
		table.SetColMinWidth(0, emailColWidth)
		table.SetColMinWidth(1, roleColWidth)
		table.SetColMinWidth(2, statusColWidth)
	}
	table.AppendBulk(rows)
	table.Render()
}
