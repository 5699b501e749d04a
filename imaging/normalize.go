// Package imaging turns pasted image blobs into data URLs, downscaling the
// ones that exceed a byte budget.
package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log/slog"
	"math"
	"mime"
	"strings"

	"golang.org/x/image/draw"

	"github.com/iw2rmb/pastebox/internal/logging"
)

var (
	ErrDecode           = errors.New("imaging: decode image")
	ErrUnsupportedMedia = errors.New("imaging: unsupported media type")
	ErrBudgetTooSmall   = errors.New("imaging: byte budget too small for resize")
)

// DefaultQuality is the JPEG quality used when re-encoding.
const DefaultQuality = 75

// Normalizer re-encodes oversized images at a width derived from the byte
// budget: one pixel of width per KiB.
type Normalizer struct {
	// Quality applies to JPEG output. PNG has no quality factor and is
	// written with best compression.
	Quality int

	Scaler     draw.Scaler
	Background color.Color

	Logger *slog.Logger
}

// NewNormalizer returns a Normalizer with the default quality, a bilinear
// scaler and a white background.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	return &Normalizer{
		Quality:    DefaultQuality,
		Scaler:     draw.ApproxBiLinear,
		Background: color.White,
		Logger:     logger,
	}
}

// Supported reports whether mediaType is an image type the normalizer can
// decode and re-encode.
func Supported(mediaType string) bool {
	_, ok := formatOf(mediaType)
	return ok
}

// Normalize returns p as a data URL. Payloads within maxBytes are passed
// through untouched whatever their type. Larger ones must be PNG or JPEG:
// they are resized to maxBytes/1024 pixels wide, keeping the aspect ratio,
// flattened onto the background, and re-encoded in their original type.
func (n *Normalizer) Normalize(ctx context.Context, p Payload, maxBytes int) (EncodedImage, error) {
	if p.Len() <= maxBytes {
		return Encode(p), nil
	}
	format, ok := formatOf(p.Type)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMedia, p.Type)
	}

	width := maxBytes / 1024
	if width < 1 {
		return "", fmt.Errorf("%w: %d bytes", ErrBudgetTooSmall, maxBytes)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, _, err := image.Decode(bytes.NewReader(p.Data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	sb := src.Bounds()
	if sb.Dx() <= 0 || sb.Dy() <= 0 {
		return "", fmt.Errorf("%w: empty image", ErrDecode)
	}

	height := int(math.Round(float64(width) * float64(sb.Dy()) / float64(sb.Dx())))
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(n.background()), image.Point{}, draw.Src)
	n.scaler().Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: n.quality()})
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(&buf, dst)
	}
	if err != nil {
		return "", fmt.Errorf("imaging: encode %s: %w", format, err)
	}

	logging.OrNop(n.Logger).Debug("image downscaled",
		"type", p.Type,
		"from", fmt.Sprintf("%dx%d", sb.Dx(), sb.Dy()),
		"to", fmt.Sprintf("%dx%d", width, height),
		"bytes_in", p.Len(),
		"bytes_out", buf.Len(),
	)
	return Encode(Payload{Type: p.Type, Data: buf.Bytes()}), nil
}

func (n *Normalizer) quality() int {
	if n.Quality < 1 || n.Quality > 100 {
		return DefaultQuality
	}
	return n.Quality
}

func (n *Normalizer) scaler() draw.Scaler {
	if n.Scaler == nil {
		return draw.ApproxBiLinear
	}
	return n.Scaler
}

func (n *Normalizer) background() color.Color {
	if n.Background == nil {
		return color.White
	}
	return n.Background
}

func formatOf(mediaType string) (string, bool) {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(mt) {
	case "image/png":
		return "png", true
	case "image/jpeg", "image/jpg":
		return "jpeg", true
	default:
		return "", false
	}
}
