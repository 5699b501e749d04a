// Package emoji inserts emoji glyphs at a host's cached caret offset.
package emoji

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iw2rmb/pastebox/buffer"
	"github.com/iw2rmb/pastebox/caret"
)

var ErrEmptyGlyph = errors.New("emoji: empty glyph")

// Advance selects how far the caret moves past an inserted glyph.
type Advance uint8

const (
	// AdvanceFixed places the caret one unit past the insertion point, then
	// caches the re-read offset plus one, capped at the text length. Exact
	// for glyphs of two UTF-16 units, off by the difference for any other
	// width.
	AdvanceFixed Advance = iota
	// AdvanceGlyph moves the caret by the glyph's UTF-16 width and caches
	// the re-read offset as is.
	AdvanceGlyph
)

func (a Advance) String() string {
	switch a {
	case AdvanceFixed:
		return "fixed"
	case AdvanceGlyph:
		return "glyph"
	default:
		return fmt.Sprintf("Advance(%d)", uint8(a))
	}
}

// ParseAdvance parses "fixed" or "glyph". Empty means fixed.
func ParseAdvance(s string) (Advance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed":
		return AdvanceFixed, nil
	case "glyph":
		return AdvanceGlyph, nil
	default:
		return 0, fmt.Errorf("emoji: unknown advance %q", s)
	}
}

// Insert splices glyph into s at st.Offset, moves the caret past it and
// updates st.Offset.
func Insert(s caret.Surface, st *caret.State, glyph string, adv Advance) error {
	if glyph == "" {
		return ErrEmptyGlyph
	}
	off := st.Offset
	if n := buffer.UnitLen(s.Text()); off < 0 || off > n {
		return fmt.Errorf("%w: cached offset %d not in [0, %d]", caret.ErrOffsetOutOfRange, off, n)
	}
	if err := s.Splice(off, glyph); err != nil {
		return fmt.Errorf("emoji: splice at %d: %w", off, err)
	}

	step, correction := 1, 1
	if adv == AdvanceGlyph {
		step, correction = buffer.UnitLen(glyph), 0
	}
	if err := caret.SetOffset(s, off+step); err != nil {
		return err
	}
	cur, err := caret.Offset(s)
	if err != nil {
		return err
	}
	// The correction never moves the cache past the end of the text.
	next := cur + correction
	if n := buffer.UnitLen(s.Text()); next > n {
		next = n
	}
	st.Offset = next
	return nil
}
