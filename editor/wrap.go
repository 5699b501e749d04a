package editor

import (
	"strings"

	graphemeutil "github.com/iw2rmb/pastebox/internal/grapheme"
)

// WrapMode controls how lines wider than the viewport are displayed. Both
// modes soft-wrap; the text itself never changes.
type WrapMode int

const (
	// WrapWord breaks after whitespace and falls back to grapheme breaks
	// for words wider than the viewport.
	WrapWord WrapMode = iota
	WrapGrapheme
)

// rowCell is one rendered grapheme.
type rowCell struct {
	cluster
	Cell  string // terminal text: tabs expanded, images labeled
	Width int

	isWhitespace bool
	isPunct      bool
}

// visualRow is one screen row. Start and End are byte offsets into the
// text. Last marks the final row of a logical line: a caret at End belongs
// to it, while a caret at the End of any other row shows on the next one.
type visualRow struct {
	Start, End int
	Cells      []rowCell
	Last       bool
}

func (r visualRow) width() int {
	w := 0
	for _, c := range r.Cells {
		w += c.Width
	}
	return w
}

// layoutRows splits text into screen rows for the current viewport width.
// A zero width disables wrapping.
func (m Model) layoutRows(text string) []visualRow {
	width := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	var rows []visualRow
	base := 0
	for _, line := range strings.Split(text, "\n") {
		rows = append(rows, wrapLine(m.lineCells(line, base), base, base+len(line), width, m.cfg.WrapMode)...)
		base += len(line) + 1
	}
	return rows
}

func (m Model) lineCells(line string, base int) []rowCell {
	clusters := lineClusters(line, base)
	cells := make([]rowCell, 0, len(clusters))
	col := 0
	for _, c := range clusters {
		text, w := m.cellText(c.Text, col)
		col += w
		cells = append(cells, rowCell{
			cluster:      c,
			Cell:         text,
			Width:        w,
			isWhitespace: graphemeutil.IsSpace(c.Text),
			isPunct:      graphemeutil.IsPunct(c.Text),
		})
	}
	return cells
}

func wrapLine(cells []rowCell, start, end, width int, mode WrapMode) []visualRow {
	if len(cells) == 0 {
		return []visualRow{{Start: start, End: end, Last: true}}
	}
	if width <= 0 {
		return []visualRow{{Start: start, End: end, Cells: cells, Last: true}}
	}

	rows := make([]visualRow, 0, 2)
	for i := 0; i < len(cells); {
		used := 0
		overflow := i
		for overflow < len(cells) {
			w := cells[overflow].Width
			if used > 0 && used+w > width {
				break
			}
			used += w
			overflow++
		}

		brk := overflow
		if mode == WrapWord && overflow < len(cells) {
			if b, ok := findWordWrapBreak(cells, i, overflow); ok {
				brk = b
			} else {
				brk = avoidLeadingPunctuation(cells, i, overflow)
			}
		}
		if brk <= i {
			brk = i + 1
		}

		rows = append(rows, visualRow{Start: cells[i].Start, End: cells[brk-1].End, Cells: cells[i:brk]})
		i = brk
	}

	// A full last row leaves no cell for the caret at the line end.
	if rows[len(rows)-1].width() >= width {
		return append(rows, visualRow{Start: end, End: end, Last: true})
	}
	rows[len(rows)-1].Last = true
	return rows
}

// findWordWrapBreak returns the end of the last whitespace run inside
// [start, overflow).
func findWordWrapBreak(cells []rowCell, start, overflow int) (int, bool) {
	lastBreak := -1
	i := start
	for i < overflow {
		if !cells[i].isWhitespace {
			i++
			continue
		}
		j := i + 1
		for j < overflow && cells[j].isWhitespace {
			j++
		}
		lastBreak = j
		i = j
	}

	if lastBreak <= start {
		return 0, false
	}
	return lastBreak, true
}

// avoidLeadingPunctuation pulls a hard break back by one grapheme so that
// punctuation does not open the next row.
func avoidLeadingPunctuation(cells []rowCell, start, overflow int) int {
	if overflow < len(cells) && cells[overflow].isPunct && overflow-1 > start {
		return overflow - 1
	}
	return overflow
}

// rowOf returns the row showing the caret at byte offset cur.
func rowOf(rows []visualRow, cur int) int {
	for i, r := range rows {
		if cur >= r.Start && cur < r.End {
			return i
		}
		if cur == r.End && r.Last {
			return i
		}
	}
	if len(rows) == 0 {
		return 0
	}
	return len(rows) - 1
}
