package segment

import (
	"bytes"
	"io"

	"github.com/golang/glog"
)

// Terminal draws the digit as three lines of text, for running
// without the display hardware.
type Terminal struct {
	W io.Writer

	lit Pattern
}

// NewTerminal creates a Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{W: w}
}

// Clear implements Display.
func (t *Terminal) Clear() {
	t.lit = 0
}

// SetPattern implements Display.
func (t *Terminal) SetPattern(p Pattern) {
	t.lit |= p
	if _, err := t.W.Write(Render(t.lit)); err != nil {
		glog.Warningf("terminal display write error: %v", err)
	}
}

// Render draws p in text:
//
//	 _
//	|_|
//	|_|.
func Render(p Pattern) []byte {
	var w bytes.Buffer
	seg := func(s Pattern, on byte) {
		if p.Has(s) {
			w.WriteByte(on)
		} else {
			w.WriteByte(' ')
		}
	}
	w.WriteByte(' ')
	seg(SegA, '_')
	w.WriteString(" \n")
	seg(SegF, '|')
	seg(SegG, '_')
	seg(SegB, '|')
	w.WriteByte('\n')
	seg(SegE, '|')
	seg(SegD, '_')
	seg(SegC, '|')
	seg(SegDP, '.')
	w.WriteByte('\n')
	return w.Bytes()
}
