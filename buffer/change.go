package buffer

// Edit describes one effective text replacement. Offset is in UTF-16 units
// of the text before the edit.
type Edit struct {
	Offset   int
	Deleted  string
	Inserted string
}

// Change is a normalized, versioned mutation payload.
type Change struct {
	VersionBefore uint64
	VersionAfter  uint64
	CursorBefore  int
	CursorAfter   int
	Edit          Edit
}

// LastChange returns the most recent text change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return b.lastChange, true
}

func (b *Buffer) recordChange(versionBefore uint64, cursorBefore int, e Edit) {
	cur, _ := b.Cursor()
	b.lastChange = Change{
		VersionBefore: versionBefore,
		VersionAfter:  b.version,
		CursorBefore:  cursorBefore,
		CursorAfter:   cur,
		Edit:          e,
	}
	b.hasLastChange = true
}
