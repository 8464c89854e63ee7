package scoreboard

import (
	"context"
	"errors"

	fx "github.com/robotalks/scoreboard/pkg/framework"
	"github.com/robotalks/scoreboard/pkg/queue"
	"github.com/robotalks/scoreboard/pkg/transport"
)

// FeedbackReporter tells the sender whether each keystroke was a digit.
// It exclusively owns the sending side of Transport.
type FeedbackReporter struct {
	Queue     *queue.Queue[RawKeystroke]
	Transport transport.Transport
	Observer  Observer
}

// Name implements Named.
func (f *FeedbackReporter) Name() string {
	return "sender"
}

// Report sends the message for k.
func (f *FeedbackReporter) Report(k RawKeystroke) error {
	msg := k.Feedback()
	if err := f.Transport.WriteString(msg); err != nil {
		return err
	}
	if f.Observer != nil {
		f.Observer.FeedbackSent(k, msg)
	}
	return nil
}

// Poll reports the next keystroke if there's one, without waiting.
func (f *FeedbackReporter) Poll() (bool, error) {
	k, ok := f.Queue.TryDequeue()
	if !ok {
		return false, nil
	}
	return true, f.Report(k)
}

// Run implements Runnable. It parks on the queue while it's empty, and
// returns nil once the queue is closed and drained.
func (f *FeedbackReporter) Run(ctx context.Context) error {
	for {
		k, err := f.Queue.Dequeue(ctx)
		if errors.Is(err, queue.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if err = f.Report(k); err != nil {
			return err
		}
	}
}

// Control implements Controller for cooperative scheduling.
func (f *FeedbackReporter) Control(cc fx.ControlContext) error {
	ok, err := f.Poll()
	if ok {
		cc.TriggerNext()
	}
	return err
}
