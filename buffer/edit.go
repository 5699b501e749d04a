package buffer

import "github.com/iw2rmb/pastebox/internal/grapheme"

// InsertText inserts s at the cursor, or replaces the active selection, and
// leaves a caret after the inserted text. Without a selection the text is
// appended.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		b.DeleteSelection()
		return
	}

	r := Caret(b.Len())
	if sel, ok := b.Selection(); ok {
		r = sel.Normalize()
	}
	start, _ := ByteIndex(b.text, r.Start)
	end, _ := ByteIndex(b.text, r.End)
	b.replaceBytes(start, end, s)
}

// Splice inserts s at off without treating it as typing: a caret or
// selection boundary strictly after the insertion point shifts by the
// inserted width, everything else stays put.
func (b *Buffer) Splice(off int, s string) error {
	idx, ok := ByteIndex(b.text, off)
	if !ok {
		return ErrOffsetOutOfRange
	}
	if s == "" {
		return nil
	}

	prev := b.snapshot()
	ver := b.version
	cursor, _ := b.Cursor()

	at := UnitOffset(b.text, idx)
	width := UnitLen(s)
	b.text = b.text[:idx] + s + b.text[idx:]
	if b.sel.active {
		if b.sel.r.Start > at {
			b.sel.r.Start += width
		}
		if b.sel.r.End > at {
			b.sel.r.End += width
		}
	}

	b.version++
	b.recordUndo(prev)
	b.recordChange(ver, cursor, Edit{Offset: at, Inserted: s})
	return nil
}

// SetText replaces the whole text and drops the selection.
func (b *Buffer) SetText(s string) {
	if s == b.text && !b.sel.active {
		return
	}
	prev := b.snapshot()
	ver := b.version
	cursor, _ := b.Cursor()

	old := b.text
	b.text = s
	b.sel = selectionState{}
	b.version++
	b.recordUndo(prev)
	b.recordChange(ver, cursor, Edit{Offset: 0, Deleted: old, Inserted: s})
}

// InsertNewline inserts a line break at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics on grapheme clusters.
func (b *Buffer) DeleteBackward() {
	r, ok := b.Selection()
	if !ok {
		return
	}
	if !r.Collapsed() {
		b.DeleteSelection()
		return
	}

	end, _ := ByteIndex(b.text, r.End)
	if end == 0 {
		return
	}
	b.replaceBytes(grapheme.Prev(b.text, end), end, "")
}

// DeleteForward applies delete-key semantics on grapheme clusters.
func (b *Buffer) DeleteForward() {
	r, ok := b.Selection()
	if !ok {
		return
	}
	if !r.Collapsed() {
		b.DeleteSelection()
		return
	}

	start, _ := ByteIndex(b.text, r.End)
	if start == len(b.text) {
		return
	}
	b.replaceBytes(start, grapheme.Next(b.text, start), "")
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	r, ok := b.Selection()
	if !ok || r.Collapsed() {
		return
	}
	r = r.Normalize()
	start, _ := ByteIndex(b.text, r.Start)
	end, _ := ByteIndex(b.text, r.End)
	b.replaceBytes(start, end, "")
}

func (b *Buffer) replaceBytes(start, end int, text string) bool {
	deleted := b.text[start:end]
	if deleted == text {
		return false
	}

	prev := b.snapshot()
	ver := b.version
	cursor, _ := b.Cursor()

	at := UnitOffset(b.text, start)
	b.text = b.text[:start] + text + b.text[end:]
	b.sel = selectionState{active: true, r: Caret(at + UnitLen(text))}

	b.version++
	b.recordUndo(prev)
	b.recordChange(ver, cursor, Edit{Offset: at, Deleted: deleted, Inserted: text})
	return true
}
