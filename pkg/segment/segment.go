// Package segment drives a seven-segment digit.
package segment

// Pattern is a segment mask, one bit per segment line:
// bit 0..6 are segments a..g, bit 7 is the decimal point.
type Pattern uint8

// Segment bits.
const (
	SegA Pattern = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
	SegDP
)

// FallbackIndex is the index of the error glyph in Table.
const FallbackIndex = 10

// Table maps digits 0-9 to patterns, followed by the error glyph "E".
var Table = [FallbackIndex + 1]Pattern{
	0x3F, 0x06, 0x5B, 0x4F, 0x66, 0x6D, 0x7D, 0x07, 0x7F, 0x6F,
	0x79,
}

// Index returns the Table index for v: v itself when 0 <= v <= 9,
// FallbackIndex otherwise.
func Index(v int) int {
	if v < 0 || v >= FallbackIndex {
		return FallbackIndex
	}
	return v
}

// Lookup returns the pattern for v, the error glyph if v is not a digit.
func Lookup(v int) Pattern {
	return Table[Index(v)]
}

// Has checks if segment bits are all lit.
func (p Pattern) Has(seg Pattern) bool {
	return p&seg == seg
}

// Display is the output the digit is drawn on.
type Display interface {
	// Clear turns all segment lines low.
	Clear()
	// SetPattern drives the lines whose bits are set in the pattern high.
	SetPattern(Pattern)
}

// Show clears the display and then sets p, so no segment of the
// previous digit stays lit.
func Show(d Display, p Pattern) {
	d.Clear()
	d.SetPattern(p)
}

// Multi mirrors every operation to all displays.
type Multi []Display

// Clear implements Display.
func (m Multi) Clear() {
	for _, d := range m {
		d.Clear()
	}
}

// SetPattern implements Display.
func (m Multi) SetPattern(p Pattern) {
	for _, d := range m {
		d.SetPattern(p)
	}
}
