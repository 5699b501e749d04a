package grapheme

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Boundaries returns the byte offsets at which grapheme clusters of text
// start, followed by len(text). An empty text yields [0].
func Boundaries(text string) []int {
	out := []int{0}
	if text == "" {
		return out
	}
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		_, end := g.Positions()
		out = append(out, end)
	}
	return out
}

// Prev returns the start of the cluster that ends at or spans idx.
func Prev(text string, idx int) int {
	b := Boundaries(text)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < idx {
			return b[i]
		}
	}
	return 0
}

// Next returns the end of the cluster that starts at or spans idx.
func Next(text string, idx int) int {
	for _, off := range Boundaries(text) {
		if off > idx {
			return off
		}
	}
	return len(text)
}

// Width returns the terminal cell width of a cluster.
func Width(cluster string) int {
	return uniseg.StringWidth(cluster)
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether all runes in cluster are Unicode punctuation.
func IsPunct(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}
