package segment

import "github.com/golang/glog"

// Logger logs every pattern set.
type Logger struct {
	lit Pattern
}

// Clear implements Display.
func (l *Logger) Clear() {
	l.lit = 0
}

// SetPattern implements Display.
func (l *Logger) SetPattern(p Pattern) {
	l.lit |= p
	glog.Infof("display %08b", uint8(l.lit))
}
