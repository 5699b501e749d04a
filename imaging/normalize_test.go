package imaging

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"math/rand"
	"testing"
)

func noise(w, h int, alpha uint8) *image.NRGBA {
	rng := rand.New(rand.NewSource(1))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(rng.Intn(256))
		img.Pix[i+1] = uint8(rng.Intn(256))
		img.Pix[i+2] = uint8(rng.Intn(256))
		img.Pix[i+3] = alpha
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func decodeURL(t *testing.T, e EncodedImage) (string, image.Image) {
	t.Helper()
	p, err := e.Decode()
	if err != nil {
		t.Fatalf("decode data url: %v", err)
	}
	img, format, err := image.Decode(bytes.NewReader(p.Data))
	if err != nil {
		t.Fatalf("decode image: %v", err)
	}
	return format, img
}

func TestNormalize_WithinBudgetKeepsBytes(t *testing.T) {
	data := encodePNG(t, noise(8, 8, 255))
	p := Payload{Type: "image/png", Data: data}

	got, err := NewNormalizer(nil).Normalize(context.Background(), p, len(data))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got != Encode(p) {
		t.Fatalf("within budget must pass bytes through unchanged")
	}
	back, _ := got.Decode()
	if !bytes.Equal(back.Data, data) {
		t.Fatalf("decoded bytes differ from input")
	}
}

func TestNormalize_OverBudgetResizes(t *testing.T) {
	const maxBytes = 10 * 1024
	src := noise(200, 100, 255)

	cases := []struct {
		name   string
		typ    string
		data   []byte
		format string
	}{
		{name: "png", typ: "image/png", data: encodePNG(t, src), format: "png"},
		{name: "jpeg", typ: "image/jpeg", data: encodeJPEG(t, src), format: "jpeg"},
		{name: "jpg alias", typ: "image/jpg", data: encodeJPEG(t, src), format: "jpeg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if len(tc.data) <= maxBytes {
				t.Fatalf("fixture too small: %d bytes", len(tc.data))
			}
			got, err := NewNormalizer(nil).Normalize(context.Background(), Payload{Type: tc.typ, Data: tc.data}, maxBytes)
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if mt := got.MediaType(); mt != tc.typ {
				t.Fatalf("media type=%q, want %q", mt, tc.typ)
			}
			format, img := decodeURL(t, got)
			if format != tc.format {
				t.Fatalf("format=%q, want %q", format, tc.format)
			}
			b := img.Bounds()
			if b.Dx() != maxBytes/1024 {
				t.Fatalf("width=%d, want %d", b.Dx(), maxBytes/1024)
			}
			if want := int(math.Round(float64(b.Dx()) / 2)); b.Dy() != want {
				t.Fatalf("height=%d, want %d", b.Dy(), want)
			}
		})
	}
}

func TestNormalize_FlattensTransparencyOnWhite(t *testing.T) {
	data := encodePNG(t, noise(300, 300, 0))

	got, err := NewNormalizer(nil).Normalize(context.Background(), Payload{Type: "image/png", Data: data}, 2*1024)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	_, img := decodeURL(t, got)
	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 || a>>8 != 255 {
		t.Fatalf("pixel=(%d,%d,%d,%d), want opaque white", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestNormalize_Errors(t *testing.T) {
	n := NewNormalizer(nil)
	ctx := context.Background()

	gif := Payload{Type: "image/gif", Data: bytes.Repeat([]byte("GIF89a"), 400)}
	if _, err := n.Normalize(ctx, gif, 1024); !errors.Is(err, ErrUnsupportedMedia) {
		t.Fatalf("gif err=%v, want ErrUnsupportedMedia", err)
	}

	garbage := Payload{Type: "image/png", Data: bytes.Repeat([]byte{0x42}, 4096)}
	if _, err := n.Normalize(ctx, garbage, 2048); !errors.Is(err, ErrDecode) {
		t.Fatalf("garbage err=%v, want ErrDecode", err)
	}

	if _, err := n.Normalize(ctx, garbage, 512); !errors.Is(err, ErrBudgetTooSmall) {
		t.Fatalf("tiny budget err=%v, want ErrBudgetTooSmall", err)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := n.Normalize(cctx, garbage, 2048); !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled err=%v, want context.Canceled", err)
	}
}

func TestNormalize_WithinBudgetPassesAnyType(t *testing.T) {
	n := NewNormalizer(nil)
	for _, mt := range []string{"image/gif", "image/webp"} {
		p := Payload{Type: mt, Data: []byte("RIFF0000WEBP")}
		got, err := n.Normalize(context.Background(), p, 1024)
		if err != nil {
			t.Fatalf("%s: %v", mt, err)
		}
		if got != Encode(p) {
			t.Fatalf("%s: got %q, want the payload unchanged", mt, got)
		}
	}
}

func TestSupported(t *testing.T) {
	cases := map[string]bool{
		"image/png":                 true,
		"IMAGE/JPEG":                true,
		"image/jpg":                 true,
		"image/png; charset=binary": true,
		"image/webp":                false,
		"text/plain":                false,
		"":                          false,
	}
	for mt, want := range cases {
		if got := Supported(mt); got != want {
			t.Fatalf("Supported(%q)=%v, want %v", mt, got, want)
		}
	}
}

func TestEncodedImage_RoundTrip(t *testing.T) {
	p := Payload{Type: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}}
	e := Encode(p)
	if got, want := e.String(), "data:image/jpeg;base64,/9j/"; got != want {
		t.Fatalf("data url=%q, want %q", got, want)
	}
	back, err := e.Decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Type != p.Type || !bytes.Equal(back.Data, p.Data) {
		t.Fatalf("round trip=%+v, want %+v", back, p)
	}

	for _, bad := range []EncodedImage{"hello", "data:image/png,abc", "data:image/png;base64,***"} {
		if _, err := bad.Decode(); !errors.Is(err, ErrInvalidDataURL) {
			t.Fatalf("Decode(%q) err=%v, want ErrInvalidDataURL", bad, err)
		}
	}
}
