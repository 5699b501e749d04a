package buffer

// Range is a selection over the buffer text, measured in UTF-16 code units.
// Start is the anchor and End is the focus, so Start may be greater than End.
type Range struct {
	Start int
	End   int
}

// Caret returns the collapsed range at off.
func Caret(off int) Range {
	return Range{Start: off, End: off}
}

// Normalize orders the range so that Start <= End.
func (r Range) Normalize() Range {
	if r.Start <= r.End {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

// Collapsed reports whether the range is a caret.
func (r Range) Collapsed() bool {
	return r.Start == r.End
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
