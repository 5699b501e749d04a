// Package buffer implements the in-memory editable surface for pastebox.
//
// Text is one flat string. Offsets are 0-based UTF-16 code units, the unit a
// browser selection counts in, so a caret may sit between the halves of a
// surrogate pair. Edits at such an offset land after that code point.
package buffer
