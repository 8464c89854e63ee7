package scoreboard

import "github.com/robotalks/scoreboard/pkg/segment"

// Observer is notified by the units as keystrokes flow through.
// Each method is always called from the same unit, but different methods
// are called concurrently. Implementations must not block.
type Observer interface {
	// KeystrokeReceived is called by InputReader, with the results of
	// both enqueue attempts.
	KeystrokeReceived(k RawKeystroke, numericQueued, rawQueued bool)
	// PatternShown is called by DisplayDriver after the display is updated.
	PatternShown(v NumericValue, p segment.Pattern)
	// FeedbackSent is called by FeedbackReporter after the message is written.
	FeedbackSent(k RawKeystroke, msg string)
}

// NopObserver ignores everything.
type NopObserver struct{}

// KeystrokeReceived implements Observer.
func (NopObserver) KeystrokeReceived(RawKeystroke, bool, bool) {}

// PatternShown implements Observer.
func (NopObserver) PatternShown(NumericValue, segment.Pattern) {}

// FeedbackSent implements Observer.
func (NopObserver) FeedbackSent(RawKeystroke, string) {}
