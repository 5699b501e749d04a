package buffer

import "unicode/utf16"

// UnitLen returns the length of s in UTF-16 code units.
func UnitLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// ByteIndex maps a UTF-16 offset into s to a byte index.
//
// An offset that falls between the two halves of a surrogate pair maps to the
// end of that code point. ok is false when off is outside [0, UnitLen(s)].
func ByteIndex(s string, off int) (idx int, ok bool) {
	if off < 0 {
		return 0, false
	}
	units := 0
	for i, r := range s {
		if units >= off {
			return i, true
		}
		units += utf16.RuneLen(r)
	}
	if off > units {
		return 0, false
	}
	return len(s), true
}

// UnitOffset maps a byte index into s to a UTF-16 offset. idx is clamped to
// [0, len(s)].
func UnitOffset(s string, idx int) int {
	idx = clampInt(idx, 0, len(s))
	return UnitLen(s[:idx])
}

// OnBoundary reports whether off lies on a code point boundary of s.
func OnBoundary(s string, off int) bool {
	idx, ok := ByteIndex(s, off)
	if !ok {
		return false
	}
	return UnitOffset(s, idx) == off
}
