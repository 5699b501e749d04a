package editor

import (
	"context"

	"github.com/iw2rmb/pastebox/paste"
)

// Clipboard provides editor-level clipboard integration.
//
// Read runs inside a tea.Cmd, off the update loop. Write errors are logged
// and otherwise ignored.
type Clipboard interface {
	Read(ctx context.Context) (paste.Event, error)
	WriteText(s string) error
}
