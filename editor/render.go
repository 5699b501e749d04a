package editor

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/pastebox/buffer"
)

func (m Model) View() string {
	parts := []string{m.viewport.View()}
	if row := m.renderPicker(); row != "" {
		parts = append(parts, row)
	}
	if m.state.Notice != "" {
		parts = append(parts, m.cfg.Style.Notice.Render(m.state.Notice))
	}
	return strings.Join(parts, "\n")
}

// marks holds the cursor and selection as byte offsets into the text.
type marks struct {
	cursor   int
	hasCaret bool

	selStart, selEnd int
}

func (m Model) byteMarks(text string) marks {
	var mk marks
	r, ok := m.buf.Selection()
	if !ok {
		return mk
	}
	mk.cursor, _ = buffer.ByteIndex(text, r.End)
	mk.hasCaret = m.focused
	n := r.Normalize()
	mk.selStart, _ = buffer.ByteIndex(text, n.Start)
	mk.selEnd, _ = buffer.ByteIndex(text, n.End)
	return mk
}

func (m *Model) renderContent() string {
	text := m.buf.Text()
	st := m.cfg.Style
	mk := m.byteMarks(text)

	if text == "" && m.cfg.Placeholder != "" {
		var sb strings.Builder
		if mk.hasCaret {
			sb.WriteString(st.Cursor.Render(" "))
		}
		sb.WriteString(st.Placeholder.Render(m.cfg.Placeholder))
		return sb.String()
	}

	var sb strings.Builder
	for i, row := range m.layoutRows(text) {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row.Cells {
			style := st.Text
			if isImageCluster(c.Text) {
				style = st.Image
			}
			switch {
			case mk.hasCaret && c.Start <= mk.cursor && mk.cursor < c.End:
				style = st.Cursor
			case c.Start >= mk.selStart && c.End <= mk.selEnd && mk.selStart < mk.selEnd:
				style = st.Selection
			}
			sb.WriteString(style.Render(c.Cell))
		}
		if mk.hasCaret && row.Last && mk.cursor == row.End {
			sb.WriteString(st.Cursor.Render(" "))
		}
	}
	return sb.String()
}

// cellText returns the terminal text for one grapheme and its cell width.
func (m Model) cellText(cluster string, col int) (string, int) {
	switch {
	case cluster == "\t":
		w := tabAdvance(col)
		return strings.Repeat(" ", w), w
	case isImageCluster(cluster):
		label := imageLabel([]rune(cluster)[0])
		return label, runewidth.StringWidth(label)
	default:
		return cluster, graphemeCellWidth(cluster, col)
	}
}

func imageLabel(r rune) string {
	return fmt.Sprintf("[image %d]", imageID(r))
}

func isImageCluster(s string) bool {
	rs := []rune(s)
	return len(rs) == 1 && isImageRune(rs[0])
}

// renderPicker renders the emoji row starting at the highlighted entry and
// wrapping around the catalog until the width is used up.
func (m Model) renderPicker() string {
	cat := m.cfg.Emoji
	n := cat.Len()
	if n == 0 {
		return ""
	}
	width := m.viewport.Width

	parts := make([]string, 0, n)
	used := 0
	for i := 0; i < n; i++ {
		glyph, _ := cat.At(m.state.EmojiIndex + i)
		w := runewidth.StringWidth(glyph)
		if i > 0 {
			w++
		}
		if width > 0 && used+w > width {
			break
		}
		used += w

		style := m.cfg.Style.Emoji
		if i == 0 {
			style = m.cfg.Style.EmojiSelected
		}
		parts = append(parts, style.Render(glyph))
	}
	return strings.Join(parts, " ")
}
