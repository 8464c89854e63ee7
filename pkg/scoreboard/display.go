package scoreboard

import (
	"context"
	"errors"

	"github.com/golang/glog"

	fx "github.com/robotalks/scoreboard/pkg/framework"
	"github.com/robotalks/scoreboard/pkg/queue"
	"github.com/robotalks/scoreboard/pkg/segment"
)

// DisplayDriver draws numeric values. It exclusively owns Display.
type DisplayDriver struct {
	Queue    *queue.Queue[NumericValue]
	Display  segment.Display
	Observer Observer
}

// Name implements Named.
func (d *DisplayDriver) Name() string {
	return "driver"
}

// Show draws v, or the error glyph if v is not a digit.
func (d *DisplayDriver) Show(v NumericValue) {
	p := v.Pattern()
	segment.Show(d.Display, p)
	glog.V(2).Infof("display %d: %#02x", v, uint8(p))
	if d.Observer != nil {
		d.Observer.PatternShown(v, p)
	}
}

// Poll draws the next value if there's one, without waiting.
func (d *DisplayDriver) Poll() bool {
	v, ok := d.Queue.TryDequeue()
	if ok {
		d.Show(v)
	}
	return ok
}

// Run implements Runnable. It parks on the queue while it's empty, and
// returns nil once the queue is closed and drained.
func (d *DisplayDriver) Run(ctx context.Context) error {
	for {
		v, err := d.Queue.Dequeue(ctx)
		if errors.Is(err, queue.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		d.Show(v)
	}
}

// Control implements Controller for cooperative scheduling: one value
// per iteration, and another iteration right away if one was drawn.
func (d *DisplayDriver) Control(cc fx.ControlContext) error {
	if d.Poll() {
		cc.TriggerNext()
	}
	return nil
}
