package cli

import "strings"

// Table is a simple column-aligned text table for record output.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		padding: 2,
	}
}

// AddRow adds a row to the table. Short rows are padded to the header count,
// long rows truncated.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			// ANSI-coloured cells only appear in the last column, where
			// padding does not matter; skip them for width purposes.
			if !strings.Contains(cell, "\033") && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var sb strings.Builder

	line := make([]string, len(t.headers))
	for i, h := range t.headers {
		line[i] = padRight(h, widths[i])
	}
	sb.WriteString(strings.Join(line, gap))
	sb.WriteString("\n")

	for i, w := range widths {
		line[i] = strings.Repeat("-", w)
	}
	sb.WriteString(strings.Join(line, gap))
	sb.WriteString("\n")

	for _, row := range t.rows {
		for i, cell := range row {
			line[i] = padRight(cell, widths[i])
		}
		sb.WriteString(strings.Join(line, gap))
		sb.WriteString("\n")
	}

	return sb.String()
}

// padRight pads a string with spaces on the right to reach the desired width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
