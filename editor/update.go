package editor

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/pastebox/buffer"
	"github.com/iw2rmb/pastebox/emoji"
	"github.com/iw2rmb/pastebox/imaging"
	"github.com/iw2rmb/pastebox/paste"
)

// PasteMsg asks the editor to resolve a host clipboard event.
type PasteMsg struct {
	Event paste.Event
}

// PasteResultMsg carries a resolved paste back into the update loop.
type PasteResultMsg struct {
	Result paste.Result
	Err    error
}

// SubmitMsg is emitted when the user sends a non-empty message.
type SubmitMsg struct {
	Value  string
	Images []imaging.EncodedImage
}

// InsertEmojiMsg inserts Glyph at the cached caret offset.
type InsertEmojiMsg struct {
	Glyph string
}

// ConfigMsg swaps reloadable settings. Zero fields keep the current value.
type ConfigMsg struct {
	Resolver     *paste.Resolver
	Emoji        emoji.Catalog
	EmojiAdvance *emoji.Advance
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.updateKey(msg)
		m.syncFromBuffer()
		return m, cmd
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case PasteMsg:
		return m, m.resolveCmd(msg.Event)
	case PasteResultMsg:
		m.applyPaste(msg.Result, msg.Err)
		m.syncFromBuffer()
		return m, nil
	case InsertEmojiMsg:
		m.insertEmoji(msg.Glyph)
		m.syncFromBuffer()
		return m, nil
	case ConfigMsg:
		m.applyConfig(msg)
		return m, nil
	default:
		// The host may have mutated the buffer directly.
		if m.syncFromBuffer() {
			m.refreshCaret()
		}
		return m, nil
	}
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Bracketed paste goes through the resolver like any clipboard event and
	// never triggers shortcuts.
	if msg.Paste && len(msg.Runes) > 0 {
		return m, m.resolveCmd(paste.TextEvent(string(msg.Runes)))
	}

	km := m.cfg.KeyMap
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, km.Left):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight})
	case key.Matches(msg, km.ShiftLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight, Extend: true})
	case key.Matches(msg, km.WordLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})
	case key.Matches(msg, km.Home):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, km.DocHome):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome})
	case key.Matches(msg, km.DocEnd):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd})

	case key.Matches(msg, km.Backspace):
		m.buf.DeleteBackward()
	case key.Matches(msg, km.Delete):
		m.buf.DeleteForward()
	case key.Matches(msg, km.Newline):
		m.buf.InsertNewline()
	case key.Matches(msg, km.Submit):
		cmd = m.submit()

	case key.Matches(msg, km.Undo):
		_ = m.buf.Undo()
	case key.Matches(msg, km.Redo):
		_ = m.buf.Redo()

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		m.cutSelection()
	case key.Matches(msg, km.Paste):
		cmd = m.readClipboardCmd()

	case key.Matches(msg, km.EmojiPrev):
		m.moveEmoji(-1)
		return m, nil
	case key.Matches(msg, km.EmojiNext):
		m.moveEmoji(1)
		return m, nil
	case key.Matches(msg, km.EmojiInsert):
		// Insertion stores its own caret estimate; a resync would erase it.
		if glyph, ok := m.cfg.Emoji.At(m.state.EmojiIndex); ok {
			m.insertEmoji(glyph)
		}
		return m, nil

	case msg.Type == tea.KeyTab:
		m.buf.InsertText("\t")
	case msg.Type == tea.KeySpace:
		m.buf.InsertText(" ")
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
		m.buf.InsertText(sanitize(string(msg.Runes)))
	}

	m.refreshCaret()
	return m, cmd
}

// resolveCmd runs the resolver off the update loop.
func (m Model) resolveCmd(ev paste.Event) tea.Cmd {
	resolver := m.resolver
	return func() tea.Msg {
		res, err := resolver.Resolve(context.Background(), ev)
		return PasteResultMsg{Result: res, Err: err}
	}
}

func (m Model) readClipboardCmd() tea.Cmd {
	cb := m.cfg.Clipboard
	if cb == nil {
		return nil
	}
	resolver := m.resolver
	return func() tea.Msg {
		ctx := context.Background()
		ev, err := cb.Read(ctx)
		if err != nil {
			return PasteResultMsg{Err: err}
		}
		res, err := resolver.Resolve(ctx, ev)
		return PasteResultMsg{Result: res, Err: err}
	}
}

func (m *Model) applyPaste(res paste.Result, err error) {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		m.state.Notice = "paste failed: " + err.Error()
		m.log.Warn("paste failed", "err", err)
		return
	}

	switch res.Kind {
	case paste.ResultText:
		text := strings.ReplaceAll(res.Text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
		if text == "" {
			return
		}
		m.buf.InsertText(sanitize(text))
	case paste.ResultImage:
		if m.state.nextImage > imageRuneLast {
			m.state.Notice = "paste failed: too many images"
			m.log.Warn("image placeholder space exhausted")
			return
		}
		r := m.state.nextImage
		m.state.nextImage++
		m.state.images[r] = res.Image
		m.buf.InsertText(string(r))
		m.log.Debug("image attached", "id", imageID(r), "type", res.Image.MediaType(), "len", len(res.Image))
	default:
		return
	}
	m.state.Notice = ""
	m.refreshCaret()
}

func (m *Model) insertEmoji(glyph string) {
	if err := emoji.Insert(*m, &m.state.Caret, glyph, m.cfg.EmojiAdvance); err != nil {
		m.state.Notice = "emoji: " + err.Error()
		m.log.Warn("emoji insert failed", "glyph", glyph, "err", err)
		m.refreshCaret()
		return
	}
	m.state.Notice = ""
}

func (m *Model) moveEmoji(delta int) {
	n := m.cfg.Emoji.Len()
	if n == 0 {
		return
	}
	m.state.EmojiIndex = ((m.state.EmojiIndex+delta)%n + n) % n
	m.rebuildContent()
}

func (m *Model) applyConfig(msg ConfigMsg) {
	if msg.Resolver != nil {
		m.resolver = msg.Resolver
	}
	if msg.Emoji != nil {
		m.cfg.Emoji = msg.Emoji
		if n := msg.Emoji.Len(); n > 0 {
			m.state.EmojiIndex %= n
		} else {
			m.state.EmojiIndex = 0
		}
	}
	if msg.EmojiAdvance != nil {
		m.cfg.EmojiAdvance = *msg.EmojiAdvance
	}
	m.log.Info("editor config applied", "max_image_bytes", m.resolver.MaxImageBytes(),
		"emoji", m.cfg.Emoji.Len(), "advance", m.cfg.EmojiAdvance)
}

// submit emits the composed message and starts over with an empty buffer.
func (m *Model) submit() tea.Cmd {
	value, images := m.Value()
	if strings.HasSuffix(value, "\n") || strings.HasSuffix(value, "\r") {
		value = value[:len(value)-1]
	}
	if value == "" {
		return nil
	}

	m.log.Info("message submitted", "len", len(value), "images", len(images))
	m.reset("")
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(m.buildChangeEvent())
	}
	m.state.Notice = ""

	out := SubmitMsg{Value: value, Images: images}
	return func() tea.Msg { return out }
}

func (m *Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s := m.selectedValue()
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.log.Warn("clipboard write failed", "err", err)
	}
}

func (m *Model) cutSelection() {
	m.copySelection()
	m.buf.DeleteSelection()
}

func (m Model) selectedValue() string {
	return strings.Map(func(r rune) rune {
		if isImageRune(r) {
			return ObjectReplacement
		}
		return r
	}, m.buf.SelectedText())
}

func imageID(r rune) int { return int(r-imageRuneFirst) + 1 }
