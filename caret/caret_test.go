package caret

import (
	"errors"
	"testing"

	"github.com/iw2rmb/pastebox/buffer"
)

// fakeSurface trusts whatever selection it is given, so tests can model a
// host whose selection went stale.
type fakeSurface struct {
	text   string
	sel    buffer.Range
	hasSel bool
}

func (f *fakeSurface) Text() string { return f.text }

func (f *fakeSurface) Selection() (buffer.Range, bool) { return f.sel, f.hasSel }

func (f *fakeSurface) SetSelection(r buffer.Range) error {
	f.sel, f.hasSel = r, true
	return nil
}

func (f *fakeSurface) Splice(off int, s string) error {
	f.text = f.text[:off] + s + f.text[off:]
	return nil
}

func TestOffset_NoSelection(t *testing.T) {
	got, err := Offset(&fakeSurface{text: "abc"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != 0 {
		t.Fatalf("offset=%d, want 0", got)
	}
}

func TestOffset_CollapsedAndSet(t *testing.T) {
	s := &fakeSurface{text: "abcdef", sel: buffer.Caret(3), hasSel: true}
	if got, _ := Offset(s); got != 3 {
		t.Fatalf("offset=%d, want 3", got)
	}
	if err := SetOffset(s, 2); err != nil {
		t.Fatalf("set offset: %v", err)
	}
	if got, _ := Offset(s); got != 2 {
		t.Fatalf("offset after set=%d, want 2", got)
	}
}

func TestOffset_MeasuresToSelectionEnd(t *testing.T) {
	for _, r := range []buffer.Range{{Start: 1, End: 4}, {Start: 4, End: 1}} {
		s := &fakeSurface{text: "abcdef", sel: r, hasSel: true}
		if got, _ := Offset(s); got != 4 {
			t.Fatalf("offset for %v=%d, want 4", r, got)
		}
	}
}

func TestOffset_StaleSelectionIsAnError(t *testing.T) {
	s := &fakeSurface{text: "ab", sel: buffer.Caret(5), hasSel: true}
	if _, err := Offset(s); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Fatalf("err=%v, want ErrOffsetOutOfRange", err)
	}
}

func TestSetOffset_OutOfRange(t *testing.T) {
	s := &fakeSurface{text: "ab"}
	for _, off := range []int{-1, 3} {
		if err := SetOffset(s, off); !errors.Is(err, ErrOffsetOutOfRange) {
			t.Fatalf("SetOffset(%d) err=%v, want ErrOffsetOutOfRange", off, err)
		}
	}
	if s.hasSel {
		t.Fatalf("selection must not be installed on error")
	}
}

func TestSetOffset_RoundTripOnBuffer(t *testing.T) {
	text := "ab\U0001F600cd"
	b := buffer.New(text, buffer.Options{})
	_ = b.SetSelection(buffer.Range{Start: 0, End: 3})

	for k := 0; k <= buffer.UnitLen(text); k++ {
		if err := SetOffset(b, k); err != nil {
			t.Fatalf("SetOffset(%d): %v", k, err)
		}
		got, err := Offset(b)
		if err != nil {
			t.Fatalf("Offset after SetOffset(%d): %v", k, err)
		}
		if got != k {
			t.Fatalf("round trip: got %d, want %d", got, k)
		}
		if r, _ := b.Selection(); !r.Collapsed() {
			t.Fatalf("selection after SetOffset(%d) not collapsed: %v", k, r)
		}
	}
}

func TestState_Sync(t *testing.T) {
	b := buffer.New("hello", buffer.Options{})
	b.SetCursor(4)
	var st State
	if err := st.Sync(b); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if st.Offset != 4 {
		t.Fatalf("state offset=%d, want 4", st.Offset)
	}
}
