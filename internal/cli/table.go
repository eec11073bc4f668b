package cli

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// printTable renders rows with display-width-aware padding. Labels and
// titles carry emoji and accented characters, so byte- or rune-count
// padding would misalign columns.
func printTable(o *IO, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(rows[0]))

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}

			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for _, row := range rows {
		var b strings.Builder

		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}

			b.WriteString(cell)

			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
			}
		}

		o.Println(b.String())
	}
}
