package scoreboard

import (
	"context"

	"github.com/golang/glog"

	fx "github.com/robotalks/scoreboard/pkg/framework"
	"github.com/robotalks/scoreboard/pkg/queue"
	"github.com/robotalks/scoreboard/pkg/transport"
)

// InputReader reads keystrokes and hands them to both consumers.
type InputReader struct {
	Transport transport.Transport
	Numeric   *queue.Queue[NumericValue]
	Raw       *queue.Queue[RawKeystroke]
	Observer  Observer
}

// Name implements Named.
func (r *InputReader) Name() string {
	return "reader"
}

// Handle publishes one keystroke to both queues, numeric first.
// A full queue silently loses the keystroke.
func (r *InputReader) Handle(k RawKeystroke) {
	numericQueued := r.Numeric.TryEnqueue(k.Numeric())
	rawQueued := r.Raw.TryEnqueue(k)
	if glog.V(2) {
		glog.Infof("keystroke %q numeric=%v raw=%v", byte(k), numericQueued, rawQueued)
	}
	if r.Observer != nil {
		r.Observer.KeystrokeReceived(k, numericQueued, rawQueued)
	}
}

// Run implements Runnable. It returns when reading from the transport
// fails, or ctx is done, which also closes the transport to release the
// blocked read. When reading fails, both queues are closed so the
// consumers finish the pending values and stop.
func (r *InputReader) Run(ctx context.Context) error {
	loopCtl := fx.LoopCtlFrom(ctx)
	errCh := make(chan error, 1)
	go func() {
		for {
			b, err := r.Transport.ReadByte()
			if err != nil {
				r.Numeric.Close()
				r.Raw.Close()
				errCh <- err
				return
			}
			r.Handle(RawKeystroke(b))
			if loopCtl != nil {
				loopCtl.TriggerNext()
			}
		}
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		transport.Close(r.Transport)
		return ctx.Err()
	}
}
