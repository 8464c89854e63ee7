package scoreboard

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/scoreboard/pkg/framework"
	"github.com/robotalks/scoreboard/pkg/queue"
	"github.com/robotalks/scoreboard/pkg/segment"
	"github.com/robotalks/scoreboard/pkg/transport"
)

// Scheduler selects how the units are executed.
type Scheduler string

// Schedulers
const (
	// Preemptive runs every unit in its own goroutine.
	Preemptive Scheduler = "preemptive"
	// Cooperative runs the consumers as controllers of a single Loop at
	// the same priority level. Only InputReader has its own goroutine.
	Cooperative Scheduler = "cooperative"
)

// Options are the pipeline settings.
type Options struct {
	Scheduler     Scheduler
	QueueCapacity int
	// LoopInterval is the idle iteration period in Cooperative mode.
	LoopInterval time.Duration
}

// Pipeline owns the queues and the three units.
type Pipeline struct {
	Options Options

	Numeric  *queue.Queue[NumericValue]
	Raw      *queue.Queue[RawKeystroke]
	Reader   *InputReader
	Driver   *DisplayDriver
	Reporter *FeedbackReporter
}

// Stats are the counters of both queues.
type Stats struct {
	Numeric queue.Stats
	Raw     queue.Stats
}

// New creates the queues and hands them to the units. The transport is
// shared by InputReader (receiving) and FeedbackReporter (sending).
// observer may be nil.
func New(opts Options, t transport.Transport, d segment.Display, observer Observer) *Pipeline {
	if observer == nil {
		observer = NopObserver{}
	}
	p := &Pipeline{
		Options: opts,
		Numeric: queue.New[NumericValue]("numeric", opts.QueueCapacity),
		Raw:     queue.New[RawKeystroke]("raw", opts.QueueCapacity),
	}
	p.Reader = &InputReader{Transport: t, Numeric: p.Numeric, Raw: p.Raw, Observer: observer}
	p.Driver = &DisplayDriver{Queue: p.Numeric, Display: d, Observer: observer}
	p.Reporter = &FeedbackReporter{Queue: p.Raw, Transport: t, Observer: observer}
	return p
}

// Stats returns a snapshot of the queue counters.
func (p *Pipeline) Stats() Stats {
	return Stats{Numeric: p.Numeric.Stats(), Raw: p.Raw.Stats()}
}

// AddToLoop implements LoopAdder, running the pipeline cooperatively in l.
func (p *Pipeline) AddToLoop(l *fx.Loop) {
	l.AddRunnable(p.Reader)
	l.AddController(fx.PrLvIdle, p.Driver, p.Reporter)
}

// Run implements Runnable. It returns when ctx is done, or any unit fails.
// When the input ends with io.EOF, the values already queued are still
// displayed and reported before Run returns io.EOF.
func (p *Pipeline) Run(ctx context.Context) error {
	glog.Infof("pipeline started: scheduler=%s queue-capacity=%d", p.Options.Scheduler, p.Numeric.Cap())
	defer func() {
		stats := p.Stats()
		glog.Infof("pipeline stopped: numeric %+v raw %+v", stats.Numeric, stats.Raw)
	}()
	if p.Options.Scheduler == Cooperative {
		return p.runCooperative(ctx)
	}

	var readErr error
	reader := fx.NamedRun(p.Reader.Name(), fx.RunFunc(func(ctx context.Context) error {
		readErr = p.Reader.Run(ctx)
		if errors.Is(readErr, io.EOF) {
			// consumers stop by themselves once the closed queues are drained.
			return nil
		}
		return readErr
	}))
	err := fx.NewRunnerWith(ctx).
		WithFailFast(true).
		Go(reader, p.Driver, p.Reporter).
		Wait()
	if err == nil && errors.Is(readErr, io.EOF) {
		return readErr
	}
	return err
}

func (p *Pipeline) runCooperative(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var readErr error
	loop := fx.NewLoop()
	if p.Options.LoopInterval > 0 {
		loop.Interval = p.Options.LoopInterval
	}
	loop.AddRunnable(fx.NamedRun(p.Reader.Name(), fx.RunFunc(func(ctx context.Context) error {
		readErr = p.Reader.Run(ctx)
		if errors.Is(readErr, io.EOF) {
			if loopCtl := fx.LoopCtlFrom(ctx); loopCtl != nil {
				loopCtl.TriggerNext()
			}
			return nil
		}
		cancel()
		return readErr
	})))
	// the drain check runs after both consumers in the same iteration.
	loop.AddController(fx.PrLvIdle, p.Driver, p.Reporter, fx.ControlFunc(func(fx.ControlContext) error {
		if p.Numeric.Drained() && p.Raw.Drained() {
			cancel()
		}
		return nil
	}))
	err := loop.Run(ctx)
	if readErr != nil && !errors.Is(readErr, context.Canceled) {
		return readErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
