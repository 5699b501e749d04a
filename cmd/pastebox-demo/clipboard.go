package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	"github.com/iw2rmb/pastebox/paste"
)

// systemClipboard serves the system clipboard as paste events. When an
// image file is configured it is offered instead, until something new is
// copied: the clipboard text read at startup is the baseline.
type systemClipboard struct {
	imagePath string
	baseline  string

	readAll  func() (string, error)
	writeAll func(string) error
}

func newClipboard(imagePath string) *systemClipboard {
	return newClipboardWith(imagePath, clipboard.ReadAll, clipboard.WriteAll)
}

func newClipboardWith(imagePath string, readAll func() (string, error), writeAll func(string) error) *systemClipboard {
	c := &systemClipboard{imagePath: imagePath, readAll: readAll, writeAll: writeAll}
	if imagePath != "" {
		c.baseline, _ = readAll()
	}
	return c
}

func (c *systemClipboard) Read(context.Context) (paste.Event, error) {
	text, err := c.readAll()
	if c.imagePath != "" && (err != nil || text == c.baseline) {
		return imageEvent(c.imagePath)
	}
	if err != nil {
		return paste.Event{}, fmt.Errorf("read clipboard: %w", err)
	}
	if text == "" {
		return paste.Event{}, nil
	}
	return paste.TextEvent(text), nil
}

func (c *systemClipboard) WriteText(s string) error {
	if err := c.writeAll(s); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

func imageEvent(path string) (paste.Event, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return paste.Event{}, err
	}
	f := paste.File{
		Name: filepath.Base(path),
		Type: mime.TypeByExtension(filepath.Ext(path)),
		Size: fi.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
	return paste.Event{Items: []paste.Item{paste.FileItem(f)}}, nil
}
