package render

import (
	"bytes"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/pdrpinto/gridnav"
)

// Table renders rows with an optional footer in the borderless layout used
// across the CLI.
func Table(header []string, rows [][]string, footer []string) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	if len(footer) > 0 {
		table.SetFooter(footer)
	}
	table.Render()

	return tableBuffer.String()
}

// ResultTable summarizes one search.
func ResultTable(mode gridnav.Mode, result gridnav.Result) string {
	return Table(
		[]string{"Mode", "Outcome", "Length", "Cost", "Expanded", "Generated"},
		[][]string{{
			mode.String(),
			result.Outcome.String(),
			strconv.Itoa(len(result.Path)),
			strconv.Itoa(result.Cost),
			strconv.Itoa(result.Expanded),
			strconv.Itoa(result.Generated),
		}},
		nil,
	)
}
