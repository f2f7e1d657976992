// Package table pads generated menu labels into aligned columns.
package table

import "strings"

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each
// column. Trailing whitespace on the last column is trimmed.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if w := len([]rune(cell)); w > widths[c] {
				widths[c] = w
			}
		}
	}

	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			align := AlignLeft
			if c < len(alignments) {
				align = alignments[c]
			}
			cells[c] = pad(cell, widths[c], align)
		}
		out[i] = strings.TrimRight(strings.Join(cells, "  "), " ")
	}
	return out
}

func pad(cell string, width int, align Alignment) string {
	gap := width - len([]rune(cell))
	if gap <= 0 {
		return cell
	}
	fill := strings.Repeat(" ", gap)
	if align == AlignRight {
		return fill + cell
	}
	return cell + fill
}
