package scoreboard

import "github.com/robotalks/scoreboard/pkg/segment"

// RawKeystroke is a single received character.
type RawKeystroke byte

// NumericValue is a keystroke minus '0'. It's one byte wide like the
// queue slot carrying it, so it can be anything in [-128, 127].
type NumericValue int8

// Feedback messages, sent without any delimiter.
const (
	MsgValidDigit   = "Valid digit was entered."
	MsgInvalidDigit = "Error! Not a valid digit."
)

// Numeric derives the NumericValue.
func (k RawKeystroke) Numeric() NumericValue {
	return NumericValue(int8(byte(k) - '0'))
}

// IsDigit checks k is '0'..'9'.
func (k RawKeystroke) IsDigit() bool {
	return k >= '0' && k <= '9'
}

// Feedback returns the message reporting k.
func (k RawKeystroke) Feedback() string {
	if k.IsDigit() {
		return MsgValidDigit
	}
	return MsgInvalidDigit
}

// IsDigit checks v is in [0, 9].
func (v NumericValue) IsDigit() bool {
	return v >= 0 && v <= 9
}

// Pattern returns the segment pattern drawing v, the error glyph if v
// is not a digit.
func (v NumericValue) Pattern() segment.Pattern {
	return segment.Lookup(int(v))
}
