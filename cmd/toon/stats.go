package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// sizeRow summarizes one rendering of the document.
type sizeRow struct {
	name   string
	bytes  int
	lines  int
	widest int // display columns
}

func measure(name, text string) sizeRow {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return sizeRow{name: name}
	}
	lines := strings.Split(text, "\n")
	widest := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l); w > widest {
			widest = w
		}
	}
	return sizeRow{name: name, bytes: len(text), lines: len(lines), widest: widest}
}

var statsHeader = []string{"FORMAT", "BYTES", "LINES", "WIDEST"}

// writeStats renders rows as a borderless table with right-aligned counts,
// followed by the size of the last row relative to the first.
func writeStats(w io.Writer, rows []sizeRow) error {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.name, strconv.Itoa(r.bytes), strconv.Itoa(r.lines), strconv.Itoa(r.widest)}
	}
	widths := columnWidths(statsHeader, cells)

	if err := writeStatsRow(w, statsHeader, widths); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintln(w, strings.Join(sep, "  ")); err != nil {
		return err
	}
	for _, row := range cells {
		if err := writeStatsRow(w, row, widths); err != nil {
			return err
		}
	}

	if len(rows) < 2 || rows[0].bytes == 0 {
		return nil
	}
	first, last := rows[0], rows[len(rows)-1]
	pct := float64(last.bytes) / float64(first.bytes) * 100
	_, err := fmt.Fprintf(w, "%s is %.1f%% of %s\n", last.name, pct, first.name)
	return err
}

func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// writeStatsRow left-aligns the first column and right-aligns the rest.
func writeStatsRow(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := width - runewidth.StringWidth(cell)
		if pad < 0 {
			pad = 0
		}
		if i == 0 {
			parts[i] = cell + strings.Repeat(" ", pad)
		} else {
			parts[i] = strings.Repeat(" ", pad) + cell
		}
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}
