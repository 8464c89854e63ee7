package segment

import "sync"

// Port models an 8-bit output port wired to the segment lines.
// Like the hardware OUTSET register, SetPattern only raises lines and
// never lowers the ones already lit, so it must follow Clear.
type Port struct {
	out    Pattern
	writes int
	lock   sync.Mutex
}

// Clear implements Display.
func (p *Port) Clear() {
	p.lock.Lock()
	p.out = 0
	p.lock.Unlock()
}

// SetPattern implements Display.
func (p *Port) SetPattern(pattern Pattern) {
	p.lock.Lock()
	p.out |= pattern
	p.writes++
	p.lock.Unlock()
}

// Pattern returns the lines currently high.
func (p *Port) Pattern() Pattern {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.out
}

// Writes returns the number of SetPattern calls.
func (p *Port) Writes() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.writes
}
