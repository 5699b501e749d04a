package imaging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDataURL = errors.New("imaging: invalid data URL")

// Payload is a binary image tagged with its MIME type.
type Payload struct {
	Type string
	Data []byte
}

// Len returns the payload size in bytes.
func (p Payload) Len() int { return len(p.Data) }

// EncodedImage is a base64 data URL: data:<mime>;base64,<payload>.
type EncodedImage string

// Encode wraps p into a data URL without touching its bytes.
func Encode(p Payload) EncodedImage {
	return EncodedImage("data:" + p.Type + ";base64," + base64.StdEncoding.EncodeToString(p.Data))
}

func (e EncodedImage) String() string { return string(e) }

// MediaType returns the MIME type in the data URL header.
func (e EncodedImage) MediaType() string {
	header, _, ok := e.split()
	if !ok {
		return ""
	}
	return header
}

// Decode returns the payload carried by e.
func (e EncodedImage) Decode() (Payload, error) {
	mime, data, ok := e.split()
	if !ok {
		return Payload{}, ErrInvalidDataURL
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return Payload{Type: mime, Data: raw}, nil
}

func (e EncodedImage) split() (mime, data string, ok bool) {
	rest, ok := strings.CutPrefix(string(e), "data:")
	if !ok {
		return "", "", false
	}
	header, data, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", false
	}
	mime, ok = strings.CutSuffix(header, ";base64")
	if !ok {
		return "", "", false
	}
	return mime, data, true
}
