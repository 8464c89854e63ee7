// Package scoreboard renders single keystrokes on a seven-segment digit
// and reports whether each keystroke was a digit.
//
// Three units run concurrently and only talk through two bounded queues:
//
//	transport -> InputReader -+-> NumericQueue -> DisplayDriver -> display
//	                          +-> RawCharQueue -> FeedbackReporter -> transport
//
// Each queue has a single producer and a single consumer, and every other
// resource (the transport's receive side, the display, the transport's
// send side) is touched by exactly one unit, so nothing is locked.
// Enqueue never blocks: a full queue drops the keystroke for that consumer.
// The display and the feedback of one keystroke are not ordered against
// each other.
package scoreboard
