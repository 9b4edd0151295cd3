package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table is the tabular form of a report result: ordered rows of named
// columns, every cell already formatted for display.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (t *Table) addRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render writes the table as aligned text. Output is deterministic for a
// given table, which keeps golden tests stable.
func (t *Table) Render(w io.Writer) error {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = len(col)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) error {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = pad(cell, widths[i])
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
		return err
	}

	if err := writeRow(t.Columns); err != nil {
		return err
	}
	rules := make([]string, len(t.Columns))
	for i := range t.Columns {
		rules[i] = strings.Repeat("-", widths[i])
	}
	if err := writeRow(rules); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writeRow(row); err != nil {
			return err
		}
	}

	if len(t.Rows) == 0 {
		if _, err := fmt.Fprintln(w, "(no rows)"); err != nil {
			return err
		}
	}
	return nil
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// formatFloat renders percentages and averages with two decimals.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
