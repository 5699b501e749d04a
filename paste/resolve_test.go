package paste

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/iw2rmb/pastebox/imaging"
)

// stubItem is an item of arbitrary kind whose string callback may never
// fire.
type stubItem struct {
	kind  Kind
	text  string
	never bool
}

func (i stubItem) Kind() Kind   { return i.kind }
func (i stubItem) Type() string { return "" }
func (i stubItem) GetAsString(fn func(string)) {
	if i.never {
		return
	}
	go fn(i.text)
}
func (i stubItem) GetAsFile() (File, error) { return File{}, errNotAFile }

func noisePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestResolve_Text(t *testing.T) {
	r := NewResolver(Options{})
	got, err := r.Resolve(context.Background(), TextEvent("hello"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Kind != ResultText || got.Text != "hello" {
		t.Fatalf("result=%+v, want text %q", got, "hello")
	}
	if got.Value() != "hello" {
		t.Fatalf("value=%q, want %q", got.Value(), "hello")
	}
}

func TestResolve_AsyncCallback(t *testing.T) {
	r := NewResolver(Options{})
	ev := Event{Items: []Item{stubItem{kind: KindString, text: "later"}}}
	got, err := r.Resolve(context.Background(), ev)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Text != "later" {
		t.Fatalf("text=%q, want %q", got.Text, "later")
	}
}

func TestResolve_NoItemsIsNoop(t *testing.T) {
	r := NewResolver(Options{})
	for _, ev := range []Event{{}, {Items: []Item{}}} {
		got, err := r.Resolve(context.Background(), ev)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got.Kind != ResultNone {
			t.Fatalf("kind=%v, want none", got.Kind)
		}
	}
}

func TestResolve_UnsupportedKind(t *testing.T) {
	r := NewResolver(Options{})
	ev := Event{Items: []Item{stubItem{kind: "image"}}}
	if _, err := r.Resolve(context.Background(), ev); !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("err=%v, want ErrUnsupportedKind", err)
	}
}

func TestResolve_FirstItemDecides(t *testing.T) {
	r := NewResolver(Options{})

	ev := Event{Items: []Item{stubItem{kind: "image"}, TextItem("ok")}}
	if _, err := r.Resolve(context.Background(), ev); !errors.Is(err, ErrUnsupportedKind) {
		t.Fatalf("err=%v, want ErrUnsupportedKind", err)
	}

	ev = Event{Items: []Item{TextItem("first"), stubItem{kind: "image"}}}
	got, err := r.Resolve(context.Background(), ev)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Text != "first" {
		t.Fatalf("text=%q, want %q", got.Text, "first")
	}
}

func TestResolve_SmallImagePassesThrough(t *testing.T) {
	data := noisePNG(t, 4, 4)
	r := NewResolver(Options{})
	ev := Event{Items: []Item{FileItem(BytesFile("a.png", "image/png", data))}}

	got, err := r.Resolve(context.Background(), ev)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Kind != ResultImage {
		t.Fatalf("kind=%v, want image", got.Kind)
	}
	want := imaging.Encode(imaging.Payload{Type: "image/png", Data: data})
	if got.Image != want {
		t.Fatalf("small image must be encoded unchanged")
	}
	if !IsImageDataURL(got.Value()) {
		t.Fatalf("value %q is not an image data URL", got.Value()[:32])
	}
}

func TestResolve_LargeImageIsDownscaled(t *testing.T) {
	data := noisePNG(t, 120, 60)
	const budget = 8 * 1024
	if len(data) <= budget {
		t.Fatalf("fixture too small: %d bytes", len(data))
	}

	r := NewResolver(Options{MaxImageBytes: budget})
	ev := Event{Items: []Item{FileItem(BytesFile("big.png", "image/png", data))}}
	got, err := r.Resolve(context.Background(), ev)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	p, err := got.Image.Decode()
	if err != nil {
		t.Fatalf("decode url: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(p.Data))
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Width != 8 || cfg.Height != 4 {
		t.Fatalf("size=%dx%d, want 8x4", cfg.Width, cfg.Height)
	}
}

func TestResolve_FileErrors(t *testing.T) {
	r := NewResolver(Options{})

	ev := Event{Items: []Item{FileItem(BytesFile("notes.txt", "text/plain", []byte("hi")))}}
	if _, err := r.Resolve(context.Background(), ev); !errors.Is(err, imaging.ErrUnsupportedMedia) {
		t.Fatalf("text file err=%v, want ErrUnsupportedMedia", err)
	}

	broken := File{Name: "x.png", Type: "image/png", Open: func() (io.ReadCloser, error) {
		return nil, errors.New("gone")
	}}
	if _, err := r.Resolve(context.Background(), Event{Items: []Item{FileItem(broken)}}); err == nil {
		t.Fatalf("expected open error")
	}

	garbage := bytes.Repeat([]byte{1}, 4096)
	small := NewResolver(Options{MaxImageBytes: 2048})
	ev = Event{Items: []Item{FileItem(BytesFile("bad.png", "image/png", garbage))}}
	if _, err := small.Resolve(context.Background(), ev); !errors.Is(err, imaging.ErrDecode) {
		t.Fatalf("garbage err=%v, want ErrDecode", err)
	}
}

func TestResolve_OtherImageTypesWithinBudget(t *testing.T) {
	r := NewResolver(Options{MaxImageBytes: 1024})

	small := BytesFile("a.gif", "image/gif", []byte("GIF89a"))
	res, err := r.Resolve(context.Background(), Event{Items: []Item{FileItem(small)}})
	if err != nil {
		t.Fatalf("small gif: %v", err)
	}
	if res.Kind != ResultImage || res.Image.MediaType() != "image/gif" {
		t.Fatalf("small gif: got kind %v type %q, want image/gif image", res.Kind, res.Image.MediaType())
	}

	large := BytesFile("b.gif", "image/gif", bytes.Repeat([]byte("GIF89a"), 400))
	if _, err := r.Resolve(context.Background(), Event{Items: []Item{FileItem(large)}}); !errors.Is(err, imaging.ErrUnsupportedMedia) {
		t.Fatalf("large gif err=%v, want ErrUnsupportedMedia", err)
	}
}

func TestResolve_Timeout(t *testing.T) {
	r := NewResolver(Options{ReadTimeout: 20 * time.Millisecond})
	ev := Event{Items: []Item{stubItem{kind: KindString, never: true}}}

	_, err := r.Resolve(context.Background(), ev)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err=%v, want ErrTimeout", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err=%v, want to wrap DeadlineExceeded", err)
	}
}

func TestResolve_SlowFileRespectsCancel(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	slow := File{Name: "slow.png", Type: "image/png", Open: func() (io.ReadCloser, error) {
		<-block
		return io.NopCloser(bytes.NewReader(nil)), nil
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewResolver(Options{}).Resolve(ctx, Event{Items: []Item{FileItem(slow)}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}

func TestIsImageDataURL(t *testing.T) {
	cases := map[string]bool{
		"data:image/png;base64,AAAA":     true,
		"data:image/jpeg;base64,AAAA":    true,
		"data:image/svg+xml;base64,AAAA": true,
		"data:text/plain;base64,AAAA":    false,
		"data:image/png,AAAA":            false,
		"hello data:image/png;base64,":   false,
	}
	for in, want := range cases {
		if got := IsImageDataURL(in); got != want {
			t.Fatalf("IsImageDataURL(%q)=%v, want %v", in, got, want)
		}
	}
}

func TestFromValue(t *testing.T) {
	if got := FromValue("data:image/jpeg;base64,/9j/"); got.Kind != ResultImage {
		t.Fatalf("jpeg data url kind=%v, want image", got.Kind)
	}
	if got := FromValue("plain"); got.Kind != ResultText || got.Text != "plain" {
		t.Fatalf("text result=%+v", got)
	}
	if got := FromValue(""); got.Kind != ResultNone {
		t.Fatalf("empty kind=%v, want none", got.Kind)
	}
}
