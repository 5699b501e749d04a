package buffer

import (
	"strings"

	"github.com/iw2rmb/pastebox/internal/grapheme"
)

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, keeps the anchor and moves the focus; if false collapses
}

// Move moves the selection focus. Without a selection the move starts at
// the beginning of the text.
func (b *Buffer) Move(m Move) {
	prev, ok := b.Selection()
	if !ok {
		prev = Caret(0)
	}

	if !m.Extend && !prev.Collapsed() && m.Unit == MoveGrapheme {
		n := prev.Normalize()
		switch m.Dir {
		case DirLeft:
			_ = b.SetSelection(Caret(n.Start))
			return
		case DirRight:
			_ = b.SetSelection(Caret(n.End))
			return
		}
	}

	idx, _ := ByteIndex(b.text, prev.End)
	next := UnitOffset(b.text, b.moveIndex(idx, m))

	if m.Extend {
		_ = b.SetSelection(Range{Start: prev.Start, End: next})
		return
	}
	_ = b.SetSelection(Caret(next))
}

func (b *Buffer) moveIndex(idx int, m Move) int {
	switch m.Unit {
	case MoveGrapheme:
		switch m.Dir {
		case DirLeft:
			return grapheme.Prev(b.text, idx)
		case DirRight:
			return grapheme.Next(b.text, idx)
		}
	case MoveWord:
		switch m.Dir {
		case DirLeft:
			return prevWordBoundary(b.text, idx)
		case DirRight:
			return nextWordBoundary(b.text, idx)
		}
	case MoveLine:
		switch m.Dir {
		case DirHome:
			return strings.LastIndexByte(b.text[:idx], '\n') + 1
		case DirEnd:
			if i := strings.IndexByte(b.text[idx:], '\n'); i >= 0 {
				return idx + i
			}
			return len(b.text)
		}
	case MoveDoc:
		switch m.Dir {
		case DirHome, DirLeft:
			return 0
		case DirEnd, DirRight:
			return len(b.text)
		}
	}
	return idx
}

// Word boundary rules:
// - skip whitespace, then skip a run of punctuation or a run of word clusters
func prevWordBoundary(text string, idx int) int {
	for idx > 0 {
		p := grapheme.Prev(text, idx)
		if !grapheme.IsSpace(text[p:idx]) {
			break
		}
		idx = p
	}
	if idx == 0 {
		return 0
	}
	punct := grapheme.IsPunct(text[grapheme.Prev(text, idx):idx])
	for idx > 0 {
		p := grapheme.Prev(text, idx)
		c := text[p:idx]
		if grapheme.IsSpace(c) || grapheme.IsPunct(c) != punct {
			break
		}
		idx = p
	}
	return idx
}

func nextWordBoundary(text string, idx int) int {
	for idx < len(text) {
		n := grapheme.Next(text, idx)
		if !grapheme.IsSpace(text[idx:n]) {
			break
		}
		idx = n
	}
	if idx == len(text) {
		return idx
	}
	punct := grapheme.IsPunct(text[idx:grapheme.Next(text, idx)])
	for idx < len(text) {
		n := grapheme.Next(text, idx)
		c := text[idx:n]
		if grapheme.IsSpace(c) || grapheme.IsPunct(c) != punct {
			break
		}
		idx = n
	}
	return idx
}
