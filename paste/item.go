package paste

import (
	"bytes"
	"errors"
	"io"
)

// Kind tags a clipboard item.
type Kind string

const (
	KindString Kind = "string"
	KindFile   Kind = "file"
)

// Item is one unit of clipboard content.
type Item interface {
	Kind() Kind
	// Type returns the item's MIME type.
	Type() string
	// GetAsString calls fn with the item's text. fn runs at most once,
	// possibly on another goroutine, and may never run for non-text items.
	GetAsString(fn func(string))
	// GetAsFile returns the file behind a file item.
	GetAsFile() (File, error)
}

// File is a file carried by a clipboard item.
type File struct {
	Name string
	Type string
	Size int64
	Open func() (io.ReadCloser, error)
}

// Event is a paste event. A nil Items slice means the event carried no
// clipboard item list.
type Event struct {
	Items []Item
}

// TextEvent returns an event with a single text item.
func TextEvent(s string) Event {
	return Event{Items: []Item{TextItem(s)}}
}

// TextItem returns a text item holding s.
func TextItem(s string) Item {
	return textItem(s)
}

type textItem string

func (textItem) Kind() Kind                    { return KindString }
func (textItem) Type() string                  { return "text/plain" }
func (t textItem) GetAsString(fn func(string)) { fn(string(t)) }
func (textItem) GetAsFile() (File, error)      { return File{}, errNotAFile }

var errNotAFile = errors.New("paste: item is not a file")

// FileItem returns a file item for f.
func FileItem(f File) Item {
	return fileItem{f: f}
}

// BytesFile returns a File served from memory.
func BytesFile(name, mediaType string, data []byte) File {
	return File{
		Name: name,
		Type: mediaType,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

type fileItem struct {
	f File
}

func (fileItem) Kind() Kind                 { return KindFile }
func (i fileItem) Type() string             { return i.f.Type }
func (fileItem) GetAsString(func(string))   {}
func (i fileItem) GetAsFile() (File, error) { return i.f, nil }
