package editor

import (
	"github.com/mattn/go-runewidth"

	graphemeutil "github.com/iw2rmb/pastebox/internal/grapheme"
)

const tabWidth = 4

// cluster is one grapheme of a logical line, with byte offsets into the
// whole buffer text.
type cluster struct {
	Start, End int
	Text       string
}

// lineClusters splits line into graphemes. base is the byte offset of line
// within the buffer text.
func lineClusters(line string, base int) []cluster {
	if line == "" {
		return nil
	}
	parts := graphemeutil.Split(line)
	out := make([]cluster, 0, len(parts))
	pos := base
	for _, p := range parts {
		out = append(out, cluster{Start: pos, End: pos + len(p), Text: p})
		pos += len(p)
	}
	return out
}

func graphemeCellWidth(text string, visualCol int) int {
	if text == "\t" {
		return tabAdvance(visualCol)
	}

	w := runewidth.StringWidth(text)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		fallback := graphemeutil.Width(text)
		if fallback > w {
			w = fallback
		}
	}
	return w
}

func tabAdvance(visualCol int) int {
	adv := tabWidth - visualCol%tabWidth
	if adv < 1 {
		return 1
	}
	return adv
}
