package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one table column. Numeric columns are right aligned.
type column struct {
	title   string
	numeric bool
}

// layoutTable pads every cell to its column's display width and joins the
// cells of a line with a single space. Missing cells render empty.
func layoutTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range rows {
		for i := range min(len(row), len(cols)) {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	out := make([]string, 0, len(rows)+1)
	out = append(out, layoutLine(cols, widths, titles))
	for _, row := range rows {
		out = append(out, layoutLine(cols, widths, row))
	}
	return out
}

func layoutLine(cols []column, widths []int, cells []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if c.numeric {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.Join(parts, " ")
}
