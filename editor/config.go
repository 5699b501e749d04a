package editor

import (
	"log/slog"

	"github.com/iw2rmb/pastebox/emoji"
	"github.com/iw2rmb/pastebox/paste"
)

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer. The caret starts at its end.
	Text string

	// Placeholder is shown while the editor is empty.
	Placeholder string

	Style  Style
	KeyMap KeyMap // zero value: DefaultKeyMap()

	// WrapMode soft-wraps lines wider than the viewport. Default: WrapWord.
	WrapMode WrapMode

	// Forwarded to buffer.Options.
	HistoryLimit int

	// Resolver turns paste events into text or images. Nil uses a resolver
	// with default limits.
	Resolver *paste.Resolver

	// Clipboard backs the copy, cut and paste bindings. Optional.
	Clipboard Clipboard

	// Emoji is the picker catalog; EmojiAdvance controls the caret step
	// after an emoji is inserted.
	Emoji        emoji.Catalog
	EmojiAdvance emoji.Advance

	// OnChange is called after every buffer version change.
	OnChange func(ChangeEvent)

	Logger *slog.Logger
}
