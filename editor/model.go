package editor

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/pastebox/buffer"
	"github.com/iw2rmb/pastebox/caret"
	"github.com/iw2rmb/pastebox/imaging"
	"github.com/iw2rmb/pastebox/internal/logging"
	"github.com/iw2rmb/pastebox/paste"
)

// ObjectReplacement stands in for an attached image in submitted text.
const ObjectReplacement = '\uFFFC'

// Pasted images live in the buffer as Supplementary Private Use Area-A
// runes, one per image, so edits and undo move them like any other
// character.
const (
	imageRuneFirst rune = 0xF0000
	imageRuneLast  rune = 0xFFFFD
)

// chromeRows is the number of rows below the text: picker and notice.
const chromeRows = 2

// State is the editor's UI state apart from the buffer.
type State struct {
	// Caret is the cached caret offset. It is refreshed after every key or
	// click that can move the selection, and consulted by emoji insertion.
	Caret caret.State

	// EmojiIndex is the highlighted picker entry.
	EmojiIndex int

	// Notice is the last non-fatal error shown under the text.
	Notice string

	images    map[rune]imaging.EncodedImage
	nextImage rune
}

// Model is a Bubble Tea component composing a message from text, pasted
// images and emoji.
type Model struct {
	cfg Config
	buf *buffer.Buffer

	state State

	focused bool

	viewport viewport.Model

	lastBufVersion uint64
	lastSel        buffer.Range

	resolver *paste.Resolver
	log      *slog.Logger
}

func New(cfg Config) Model {
	if len(cfg.KeyMap.Submit.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	log := logging.OrNop(cfg.Logger).With("component", "editor")
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = paste.NewResolver(paste.Options{Logger: log})
	}

	m := Model{
		cfg:      cfg,
		focused:  true,
		viewport: viewport.New(0, 0),
		resolver: resolver,
		log:      log,
	}
	m.reset(cfg.Text)
	return m
}

// reset replaces the buffer with text, caret at the end, and drops attached
// images.
func (m *Model) reset(text string) {
	m.buf = buffer.New(sanitize(text), buffer.Options{HistoryLimit: m.cfg.HistoryLimit})
	m.buf.SetCursor(m.buf.Len())
	m.state.images = make(map[rune]imaging.EncodedImage)
	m.state.nextImage = imageRuneFirst
	m.refreshCaret()

	m.lastBufVersion = m.buf.Version()
	m.lastSel, _ = m.buf.Selection()
	m.rebuildContent()
	m.followCursor()
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// State returns a copy of the UI state.
func (m Model) State() State { return m.state }

// Resolver returns the paste resolver in use.
func (m Model) Resolver() *paste.Resolver { return m.resolver }

// Text, Selection, SetSelection and Splice make the Model a caret.Surface
// backed by its buffer.

func (m Model) Text() string                      { return m.buf.Text() }
func (m Model) Selection() (buffer.Range, bool)   { return m.buf.Selection() }
func (m Model) SetSelection(r buffer.Range) error { return m.buf.SetSelection(r) }
func (m Model) Splice(off int, s string) error    { return m.buf.Splice(off, s) }

// Value returns the outgoing text, with every attached image replaced by
// U+FFFC, and the images in text order.
func (m Model) Value() (string, []imaging.EncodedImage) {
	text := m.buf.Text()
	if !strings.ContainsFunc(text, isImageRune) {
		return text, nil
	}

	var sb strings.Builder
	var images []imaging.EncodedImage
	for _, r := range text {
		if img, ok := m.state.images[r]; ok {
			sb.WriteRune(ObjectReplacement)
			images = append(images, img)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String(), images
}

// InsertValue inserts a resolved paste value: a data:image URL attaches an
// image, anything else is inserted as text.
func (m Model) InsertValue(s string) Model {
	m.applyPaste(paste.FromValue(s), nil)
	m.syncFromBuffer()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	height -= chromeRows
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// refreshCaret re-reads the caret offset into the cache.
func (m *Model) refreshCaret() {
	if err := m.state.Caret.Sync(*m); err != nil {
		m.log.Debug("caret sync failed", "err", err)
	}
}

// syncFromBuffer re-renders after the buffer or selection moved and fires
// OnChange for version changes.
func (m *Model) syncFromBuffer() (changed bool) {
	ver := m.buf.Version()
	sel, _ := m.buf.Selection()
	if ver == m.lastBufVersion && sel == m.lastSel {
		return false
	}
	verChanged := ver != m.lastBufVersion
	m.lastBufVersion = ver
	m.lastSel = sel
	m.rebuildContent()
	m.followCursor()

	if verChanged && m.cfg.OnChange != nil {
		m.cfg.OnChange(m.buildChangeEvent())
	}
	return true
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	row := m.cursorRow()

	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}

func (m Model) cursorRow() int {
	cur, ok := m.buf.Cursor()
	if !ok {
		return 0
	}
	text := m.buf.Text()
	idx, _ := buffer.ByteIndex(text, cur)
	return rowOf(m.layoutRows(text), idx)
}

func isImageRune(r rune) bool {
	return r >= imageRuneFirst && r <= imageRuneLast
}

// sanitize keeps foreign text from forging image placeholders.
func sanitize(s string) string {
	if !strings.ContainsFunc(s, isImageRune) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isImageRune(r) {
			return '\uFFFD'
		}
		return r
	}, s)
}
