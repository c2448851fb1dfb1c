package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Table is an aligned text table. Columns listed in Right are padded on
// the left so numbers line up.
type Table struct {
	Headers []string
	Rows    [][]string
	Right   map[int]bool
}

// RenderTable renders headers and rows with left-aligned columns.
func RenderTable(headers []string, rows [][]string) string {
	return Table{Headers: headers, Rows: rows}.Render()
}

// Render draws the header, a separator line and the rows. Widths are
// measured with lipgloss so styled cells align.
func (t Table) Render() string {
	cols := len(t.Headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	for i, h := range t.Headers {
		b.WriteString(t.pad(i, StyleHeader.Render(h), widths[i], i == cols-1))
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range t.Rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(t.pad(i, cell, widths[i], i == cols-1))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (t Table) pad(col int, cell string, width int, last bool) string {
	fill := strings.Repeat(" ", max(width-lipgloss.Width(cell), 0))
	if t.Right[col] {
		cell = fill + cell
		fill = ""
	}
	if last {
		return cell
	}
	return cell + fill + strings.Repeat(" ", colGap)
}
