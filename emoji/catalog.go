package emoji

// Catalog is an ordered list of glyphs offered by a picker. Each glyph is
// inserted as a unit.
type Catalog []string

// DefaultCatalog returns the built-in glyph list.
func DefaultCatalog() Catalog {
	return Catalog{
		"\U0001F600", "\U0001F601", "\U0001F602", "\U0001F603", "\U0001F604",
		"\U0001F605", "\U0001F606", "\U0001F609", "\U0001F60A", "\U0001F60B",
		"\U0001F60D", "\U0001F60E", "\U0001F618", "\U0001F61C", "\U0001F622",
		"\U0001F62D", "\U0001F631", "\U0001F621", "\U0001F914", "\U0001F644",
		"\U0001F44D", "\U0001F44E", "\U0001F44F", "\U0001F64F", "\U0001F389",
		"\U0001F525", "\U0001F4AF", "\U0001F680",
	}
}

func (c Catalog) Len() int { return len(c) }

// At returns the glyph at i, wrapping around in both directions.
func (c Catalog) At(i int) (string, bool) {
	if len(c) == 0 {
		return "", false
	}
	i %= len(c)
	if i < 0 {
		i += len(c)
	}
	return c[i], true
}
