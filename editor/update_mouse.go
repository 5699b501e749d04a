package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/pastebox/buffer"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	if !m.focused {
		return m, cmd
	}

	// Only a left press moves the caret.
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, cmd
	}
	if msg.X < 0 || msg.Y < 0 || msg.X >= m.viewport.Width || msg.Y >= m.viewport.Height {
		return m, cmd
	}

	m.buf.SetCursor(m.screenToOffset(msg.X, msg.Y))
	m.refreshCaret()
	m.syncFromBuffer()
	return m, cmd
}

// screenToOffset maps a viewport cell to the nearest caret offset at or
// before it. Clicks past the end of a row land at its end, or on its last
// grapheme when the line continues on the next row.
func (m Model) screenToOffset(x, y int) int {
	text := m.buf.Text()
	rows := m.layoutRows(text)
	idx := y + m.viewport.YOffset
	if idx >= len(rows) {
		return buffer.UnitLen(text)
	}

	row := rows[idx]
	col := 0
	for _, c := range row.Cells {
		if x < col+c.Width {
			return buffer.UnitOffset(text, c.Start)
		}
		col += c.Width
	}
	if !row.Last && len(row.Cells) > 0 {
		return buffer.UnitOffset(text, row.Cells[len(row.Cells)-1].Start)
	}
	return buffer.UnitOffset(text, row.End)
}
