package buffer

import "errors"

// ErrOffsetOutOfRange is returned when an offset lies outside [0, Len()].
var ErrOffsetOutOfRange = errors.New("buffer: offset out of range")

type Options struct {
	HistoryLimit int // default: 1000
}

type selectionState struct {
	active bool
	r      Range
}

// Buffer is a flat editable text with a single selection. It is the
// in-memory editable surface: offsets are UTF-16 code units, the selection
// may be absent (no focus), collapsed (a caret) or extended.
type Buffer struct {
	text    string
	version uint64

	sel selectionState

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	return &Buffer{
		text: text,
		opt:  opt,
	}
}

func (b *Buffer) Text() string { return b.text }

// Len returns the text length in UTF-16 code units.
func (b *Buffer) Len() int { return UnitLen(b.text) }

func (b *Buffer) Version() uint64 { return b.version }

// Selection returns the active selection. Start and End are reported as
// set, so the range may be backwards.
func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	return b.sel.r, true
}

// Cursor returns the selection focus, if any.
func (b *Buffer) Cursor() (int, bool) {
	if !b.sel.active {
		return 0, false
	}
	return b.sel.r.End, true
}

// SetSelection installs r as the only selection.
func (b *Buffer) SetSelection(r Range) error {
	n := b.Len()
	if r.Start < 0 || r.Start > n || r.End < 0 || r.End > n {
		return ErrOffsetOutOfRange
	}
	next := selectionState{active: true, r: r}
	if next == b.sel {
		return nil
	}
	b.sel = next
	b.version++
	return nil
}

// SetCursor collapses the selection to off, clamped into the text.
func (b *Buffer) SetCursor(off int) {
	_ = b.SetSelection(Caret(clampInt(off, 0, b.Len())))
}

// ClearSelection drops the selection entirely.
func (b *Buffer) ClearSelection() {
	if !b.sel.active {
		return
	}
	b.sel = selectionState{}
	b.version++
}

// SelectedText returns the text covered by the active selection.
func (b *Buffer) SelectedText() string {
	r, ok := b.Selection()
	if !ok || r.Collapsed() {
		return ""
	}
	r = r.Normalize()
	start, _ := ByteIndex(b.text, r.Start)
	end, _ := ByteIndex(b.text, r.End)
	return b.text[start:end]
}
