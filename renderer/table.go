package renderer

import (
	"strings"

	"github.com/mattn/go-runewidth"
	md "github.com/nao1215/markdown"
)

// alignedTable renders t as a markdown table whose columns line up on a
// terminal: every cell is padded to the display width of its column, so wide
// characters count double.
func alignedTable(t md.TableSet) string {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = max(3, runewidth.StringWidth(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	var b strings.Builder
	line := func(cells []string) {
		b.WriteString("|")
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if alignment(t, i) == md.AlignRight {
				cell = runewidth.FillLeft(cell, w)
			} else {
				cell = runewidth.FillRight(cell, w)
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteString("\n")
	}

	line(t.Header)
	b.WriteString("|")
	for i, w := range widths {
		switch alignment(t, i) {
		case md.AlignLeft:
			b.WriteString(":" + strings.Repeat("-", w+1) + "|")
		case md.AlignRight:
			b.WriteString(strings.Repeat("-", w+1) + ":|")
		case md.AlignCenter:
			b.WriteString(":" + strings.Repeat("-", w) + ":|")
		default:
			b.WriteString(strings.Repeat("-", w+2) + "|")
		}
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		line(row)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func alignment(t md.TableSet, i int) md.TableAlignment {
	if i < len(t.Alignment) {
		return t.Alignment[i]
	}
	return md.AlignDefault
}

// leftThenRight aligns the first column left and n-1 numeric columns right.
func leftThenRight(n int) []md.TableAlignment {
	a := make([]md.TableAlignment, n)
	a[0] = md.AlignLeft
	for i := 1; i < n; i++ {
		a[i] = md.AlignRight
	}
	return a
}
