package editor

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/pastebox/emoji"
	"github.com/iw2rmb/pastebox/imaging"
)

func TestMain(m *testing.M) {
	// Pin a colorless profile so only padding and transforms show up.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func upper() lipgloss.Style { return lipgloss.NewStyle().Transform(strings.ToUpper) }

func TestRender_CursorProducesPaddingWhenFocused(t *testing.T) {
	m := New(Config{
		Text:  "ab",
		Style: Style{Text: lipgloss.NewStyle(), Cursor: lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)},
	})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})

	got := m.renderContent()
	want := "a b "
	if got != want {
		t.Fatalf("unexpected cursor rendering:\n got: %q\nwant: %q", got, want)
	}

	m = m.Blur()
	if got := m.renderContent(); got != "ab" {
		t.Fatalf("blurred rendering: got %q, want %q", got, "ab")
	}
}

func TestRender_CursorAtLineEnd(t *testing.T) {
	bar := lipgloss.NewStyle().Transform(func(string) string { return "|" })
	m := New(Config{Text: "a\nb", Style: Style{Cursor: bar}})
	if got := m.renderContent(); got != "a\nb|" {
		t.Fatalf("cursor at end: got %q, want %q", got, "a\nb|")
	}
}

func TestRender_SelectionAndTabs(t *testing.T) {
	m := New(Config{Text: "ab\tc", Style: Style{Selection: upper()}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	m = m.Blur()

	// The tab sits at column 2 and advances to the next stop.
	got := m.renderContent()
	want := "ab  C"
	if got != want {
		t.Fatalf("selection rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_ImagePlaceholderLabel(t *testing.T) {
	img := imaging.Encode(imaging.Payload{Type: "image/png", Data: []byte{1, 2, 3}})
	m := New(Config{Text: "x", Style: Style{Image: upper()}})
	m = m.InsertValue(string(img))
	m = m.InsertValue(string(img))
	m = m.Blur()

	got := m.renderContent()
	want := "x[IMAGE 1][IMAGE 2]"
	if got != want {
		t.Fatalf("image rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_Placeholder(t *testing.T) {
	m := New(Config{Placeholder: "Say hi"}).Blur()
	if got := m.renderContent(); got != "Say hi" {
		t.Fatalf("placeholder: got %q, want %q", got, "Say hi")
	}
}

func TestRender_PickerRowFitsWidth(t *testing.T) {
	m := New(Config{
		Emoji: emoji.Catalog{"a", "b", "c"},
		Style: Style{EmojiSelected: upper()},
	})
	if got := m.renderPicker(); got != "A b c" {
		t.Fatalf("picker: got %q, want %q", got, "A b c")
	}

	m = m.SetSize(3, 5)
	if got := m.renderPicker(); got != "A b" {
		t.Fatalf("narrow picker: got %q, want %q", got, "A b")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if got := m.renderPicker(); got != "C a" {
		t.Fatalf("picker after prev: got %q, want %q", got, "C a")
	}

	if got := New(Config{}).renderPicker(); got != "" {
		t.Fatalf("empty catalog picker: got %q, want empty", got)
	}
}

func TestView_ShowsNotice(t *testing.T) {
	m := New(Config{Text: "abc"})
	m = m.SetSize(10, 3)
	m.Buffer().SetText("")
	m, _ = m.Update(InsertEmojiMsg{Glyph: "x"})

	if got := m.View(); !strings.Contains(got, "emoji:") {
		t.Fatalf("view should contain the notice, got %q", got)
	}
}
