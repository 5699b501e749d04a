package editor

import "github.com/iw2rmb/pastebox/buffer"

// ChangeEvent is delivered to Config.OnChange after the text or selection
// version changes.
type ChangeEvent struct {
	Version uint64

	// Caret is the cached caret offset (UTF-16 units) after the change.
	Caret int

	Selection struct {
		Range  buffer.Range
		Active bool
	}

	// Text is the outgoing value: image placeholders read as U+FFFC.
	Text   string
	Images int
}

func (m Model) buildChangeEvent() ChangeEvent {
	text, images := m.Value()
	ev := ChangeEvent{
		Version: m.buf.Version(),
		Caret:   m.state.Caret.Offset,
		Text:    text,
		Images:  len(images),
	}
	if r, ok := m.buf.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	return ev
}
