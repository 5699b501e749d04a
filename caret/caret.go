// Package caret reads and places the caret of an editable surface as a
// character offset from the start of its text.
//
// The surface is treated as a single flat text node; nested content is not
// walked.
package caret

import (
	"errors"
	"fmt"

	"github.com/iw2rmb/pastebox/buffer"
)

// ErrOffsetOutOfRange reports an offset outside [0, length of the surface text].
var ErrOffsetOutOfRange = errors.New("caret: offset out of range")

// Surface is the editable region the caret lives in. Offsets are UTF-16
// code units.
type Surface interface {
	Text() string
	Selection() (buffer.Range, bool)
	SetSelection(r buffer.Range) error
	Splice(off int, s string) error
}

// State is the caret state a host keeps between input events. Offset is
// advisory: any edit that bypasses the tracked paths makes it stale.
type State struct {
	Offset int
}

// Offset returns the number of characters between the start of the surface
// and the end of the active selection, or 0 without a selection.
func Offset(s Surface) (int, error) {
	r, ok := s.Selection()
	if !ok {
		return 0, nil
	}
	off := r.Normalize().End
	if err := check(s, off); err != nil {
		return 0, err
	}
	return off, nil
}

// SetOffset replaces the selection with a caret at off.
func SetOffset(s Surface, off int) error {
	if err := check(s, off); err != nil {
		return err
	}
	if err := s.SetSelection(buffer.Caret(off)); err != nil {
		return fmt.Errorf("caret: set selection at %d: %w", off, err)
	}
	return nil
}

// Sync refreshes st from the surface.
func (st *State) Sync(s Surface) error {
	off, err := Offset(s)
	if err != nil {
		return err
	}
	st.Offset = off
	return nil
}

func check(s Surface, off int) error {
	if n := buffer.UnitLen(s.Text()); off < 0 || off > n {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetOutOfRange, off, n)
	}
	return nil
}
