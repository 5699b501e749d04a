// Package paste resolves clipboard paste events into text or image data
// URLs.
package paste

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/iw2rmb/pastebox/imaging"
	"github.com/iw2rmb/pastebox/internal/logging"
)

var (
	ErrUnsupportedKind = errors.New("paste: unsupported clipboard item kind")
	ErrTimeout         = errors.New("paste: timed out reading clipboard")
)

const (
	// DefaultMaxImageBytes is the size above which pasted images are
	// downscaled.
	DefaultMaxImageBytes = 200 * 1024
	DefaultReadTimeout   = 5 * time.Second
)

type ResultKind uint8

const (
	ResultNone ResultKind = iota
	ResultText
	ResultImage
)

func (k ResultKind) String() string {
	switch k {
	case ResultNone:
		return "none"
	case ResultText:
		return "text"
	case ResultImage:
		return "image"
	default:
		return fmt.Sprintf("ResultKind(%d)", uint8(k))
	}
}

// Result is the outcome of one paste.
type Result struct {
	Kind  ResultKind
	Text  string
	Image imaging.EncodedImage
}

// Value returns the resolved string: the text, or the image data URL.
func (r Result) Value() string {
	if r.Kind == ResultImage {
		return r.Image.String()
	}
	return r.Text
}

var imageDataURL = regexp.MustCompile(`^data:image/[0-9A-Za-z.+-]+;base64,`)

// IsImageDataURL reports whether s is a base64 image data URL of any image
// subtype.
func IsImageDataURL(s string) bool {
	return imageDataURL.MatchString(s)
}

// FromValue classifies a resolved string.
func FromValue(s string) Result {
	switch {
	case s == "":
		return Result{}
	case IsImageDataURL(s):
		return Result{Kind: ResultImage, Image: imaging.EncodedImage(s)}
	default:
		return Result{Kind: ResultText, Text: s}
	}
}

type Options struct {
	// MaxImageBytes is the byte budget for pasted images. Default: 200 KiB.
	MaxImageBytes int
	// ReadTimeout bounds one Resolve call. Default: 5s.
	ReadTimeout time.Duration

	Normalizer *imaging.Normalizer
	Logger     *slog.Logger
}

// Resolver turns paste events into Results. It keeps no state between
// calls and is safe for concurrent use.
type Resolver struct {
	opt Options
	log *slog.Logger
}

func NewResolver(opt Options) *Resolver {
	if opt.MaxImageBytes <= 0 {
		opt.MaxImageBytes = DefaultMaxImageBytes
	}
	if opt.ReadTimeout <= 0 {
		opt.ReadTimeout = DefaultReadTimeout
	}
	log := logging.OrNop(opt.Logger)
	if opt.Normalizer == nil {
		opt.Normalizer = imaging.NewNormalizer(log)
	}
	return &Resolver{opt: opt, log: log}
}

// MaxImageBytes returns the configured image byte budget.
func (r *Resolver) MaxImageBytes() int { return r.opt.MaxImageBytes }

// Resolve settles on the first clipboard item of ev. A text item resolves
// to its string, a file item to an image data URL, and any other kind fails
// with ErrUnsupportedKind even when later items could be used. An event
// without items resolves to ResultNone.
func (r *Resolver) Resolve(ctx context.Context, ev Event) (Result, error) {
	if len(ev.Items) == 0 {
		return Result{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.opt.ReadTimeout)
	defer cancel()

	item := ev.Items[0]
	switch item.Kind() {
	case KindString:
		s, err := readString(ctx, item)
		if err != nil {
			return Result{}, err
		}
		r.log.Debug("paste resolved", "kind", ResultText, "len", len(s))
		return Result{Kind: ResultText, Text: s}, nil
	case KindFile:
		img, err := r.readImage(ctx, item)
		if err != nil {
			return Result{}, err
		}
		r.log.Debug("paste resolved", "kind", ResultImage, "type", img.MediaType(), "len", len(img))
		return Result{Kind: ResultImage, Image: img}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, item.Kind())
	}
}

func readString(ctx context.Context, item Item) (string, error) {
	ch := make(chan string, 1)
	var once sync.Once
	item.GetAsString(func(s string) {
		once.Do(func() { ch <- s })
	})

	select {
	case s := <-ch:
		return s, nil
	case <-ctx.Done():
		return "", ctxErr(ctx)
	}
}

func (r *Resolver) readImage(ctx context.Context, item Item) (imaging.EncodedImage, error) {
	f, err := item.GetAsFile()
	if err != nil {
		return "", fmt.Errorf("paste: get file: %w", err)
	}
	mediaType := f.Type
	if mediaType == "" {
		mediaType = item.Type()
	}
	// Only images become image results. Whether a large one can be resized
	// is up to the normalizer.
	if !strings.HasPrefix(strings.ToLower(mediaType), "image/") {
		return "", fmt.Errorf("%w: %q", imaging.ErrUnsupportedMedia, mediaType)
	}

	data, err := readFile(ctx, f)
	if err != nil {
		return "", err
	}
	p := imaging.Payload{Type: mediaType, Data: data}
	if p.Len() <= r.opt.MaxImageBytes {
		return imaging.Encode(p), nil
	}

	img, err := r.opt.Normalizer.Normalize(ctx, p, r.opt.MaxImageBytes)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctxErr(ctx)
		}
		return "", err
	}
	return img, nil
}

type readResult struct {
	data []byte
	err  error
}

func readFile(ctx context.Context, f File) ([]byte, error) {
	if f.Open == nil {
		return nil, fmt.Errorf("paste: file %q has no content", f.Name)
	}

	ch := make(chan readResult, 1)
	go func() {
		rc, err := f.Open()
		if err != nil {
			ch <- readResult{err: fmt.Errorf("paste: open file: %w", err)}
			return
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			err = fmt.Errorf("paste: read file: %w", err)
		}
		ch <- readResult{data: data, err: err}
	}()

	select {
	case res := <-ch:
		return res.data, res.err
	case <-ctx.Done():
		return nil, ctxErr(ctx)
	}
}

func ctxErr(ctx context.Context) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
