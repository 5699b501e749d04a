package buffer

type bufferSnapshot struct {
	text string
	sel  selectionState
}

type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{text: b.text, sel: b.sel}
}

func (b *Buffer) restore(s bufferSnapshot) {
	b.text = s.text
	b.sel = s.sel
	if !b.sel.active {
		return
	}
	n := b.Len()
	b.sel.r = Range{Start: clampInt(b.sel.r.Start, 0, n), End: clampInt(b.sel.r.End, 0, n)}
}

func (b *Buffer) recordUndo(prev bufferSnapshot) {
	limit := b.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	b.hist.undo = append(b.hist.undo, prev)
	if len(b.hist.undo) > limit {
		b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
	}
	b.hist.redo = nil
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

func (b *Buffer) Undo() bool {
	if len(b.hist.undo) == 0 {
		return false
	}

	cur := b.snapshot()
	i := len(b.hist.undo) - 1
	prev := b.hist.undo[i]
	b.hist.undo = b.hist.undo[:i]
	b.hist.redo = append(b.hist.redo, cur)

	b.restoreWithChange(cur, prev)
	return true
}

func (b *Buffer) Redo() bool {
	if len(b.hist.redo) == 0 {
		return false
	}

	cur := b.snapshot()
	i := len(b.hist.redo) - 1
	next := b.hist.redo[i]
	b.hist.redo = b.hist.redo[:i]

	if limit := b.opt.HistoryLimit; limit > 0 {
		b.hist.undo = append(b.hist.undo, cur)
		if len(b.hist.undo) > limit {
			b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
		}
	}

	b.restoreWithChange(cur, next)
	return true
}

func (b *Buffer) restoreWithChange(cur, next bufferSnapshot) {
	ver := b.version
	cursor, _ := b.Cursor()
	b.restore(next)
	b.version++
	b.recordChange(ver, cursor, Edit{Offset: 0, Deleted: cur.text, Inserted: next.text})
}
