// Package editor provides a Bubble Tea message composer backed by the
// buffer package.
//
// The editor is the host-backed caret.Surface: it tracks a cached caret
// offset across keys and clicks, resolves clipboard events through the
// paste package off the update loop, attaches pasted images inline,
// inserts emoji from a picker row and emits SubmitMsg on enter.
package editor
