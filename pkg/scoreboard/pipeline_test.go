package scoreboard

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/scoreboard/pkg/framework"
	"github.com/robotalks/scoreboard/pkg/segment"
	"github.com/robotalks/scoreboard/pkg/transport"
)

type pipelineTestEnv struct {
	t         *testing.T
	transport *testTransport
	port      *segment.Port
	observer  *recordingObserver
	pipeline  *Pipeline
	cancel    func()
	errCh     chan error
}

func startPipeline(t *testing.T, scheduler Scheduler) *pipelineTestEnv {
	env := &pipelineTestEnv{
		t:         t,
		transport: newTestTransport(),
		port:      &segment.Port{},
		observer:  &recordingObserver{},
		errCh:     make(chan error, 1),
	}
	env.pipeline = New(Options{Scheduler: scheduler, QueueCapacity: 5, LoopInterval: time.Millisecond},
		env.transport, env.port, env.observer)
	var ctx context.Context
	ctx, env.cancel = context.WithCancel(context.Background())
	go func() { env.errCh <- env.pipeline.Run(ctx) }()
	return env
}

func (e *pipelineTestEnv) expectPattern(p segment.Pattern) {
	require.Eventually(e.t, func() bool {
		return e.port.Pattern() == p
	}, time.Second, time.Millisecond, "expect pattern %#02x", uint8(p))
}

func (e *pipelineTestEnv) stop() error {
	e.cancel()
	select {
	case err := <-e.errCh:
		return err
	case <-time.After(time.Second):
		e.t.Fatal("pipeline didn't stop")
	}
	return nil
}

func TestPipelineScenarios(t *testing.T) {
	for _, scheduler := range []Scheduler{Preemptive, Cooperative} {
		t.Run(string(scheduler), func(t *testing.T) {
			env := startPipeline(t, scheduler)

			env.transport.type_("3")
			env.expectPattern(0x4F)
			env.transport.expectMsg(t, MsgValidDigit)

			env.transport.type_("A")
			env.expectPattern(0x79)
			env.transport.expectMsg(t, MsgInvalidDigit)

			require.NoError(t, env.stop())
			require.Equal(t, MsgValidDigit+MsgInvalidDigit, env.transport.output())
			stats := env.pipeline.Stats()
			require.Equal(t, uint64(2), stats.Numeric.Received)
			require.Equal(t, uint64(2), stats.Raw.Received)
		})
	}
}

func TestPipelinePerQueueOrder(t *testing.T) {
	for _, scheduler := range []Scheduler{Preemptive, Cooperative} {
		t.Run(string(scheduler), func(t *testing.T) {
			env := startPipeline(t, scheduler)
			keys := "1x2y3"
			for i := 0; i < len(keys); i++ {
				env.transport.type_(keys[i : i+1])
				env.transport.expectMsg(t, RawKeystroke(keys[i]).Feedback())
			}
			env.expectPattern(0x4F)
			require.NoError(t, env.stop())

			env.observer.lock.Lock()
			defer env.observer.lock.Unlock()
			var values []NumericValue
			for _, shown := range env.observer.shown {
				values = append(values, shown.value)
			}
			require.Equal(t, []NumericValue{1, 72, 2, 73, 3}, values)
		})
	}
}

func TestPipelineOverflowWithPausedConsumers(t *testing.T) {
	tr := newTestTransport()
	var port segment.Port
	p := New(Options{QueueCapacity: 5}, tr, &port, nil)
	for _, k := range []byte("123456") {
		p.Reader.Handle(RawKeystroke(k))
	}
	stats := p.Stats()
	require.Equal(t, uint64(5), stats.Numeric.Sent)
	require.Equal(t, uint64(1), stats.Numeric.Dropped)
	require.Equal(t, uint64(1), stats.Raw.Dropped)

	for v := NumericValue(1); v <= 5; v++ {
		require.True(t, p.Driver.Poll())
		require.Equal(t, NumericValue(v).Pattern(), port.Pattern())
	}
	require.False(t, p.Driver.Poll())
	require.Equal(t, segment.Lookup(5), port.Pattern())
}

func TestPipelineStopsWhenTransportCloses(t *testing.T) {
	for _, scheduler := range []Scheduler{Preemptive, Cooperative} {
		t.Run(string(scheduler), func(t *testing.T) {
			env := startPipeline(t, scheduler)
			env.transport.type_("1234A")
			close(env.transport.readCh)
			select {
			case err := <-env.errCh:
				require.ErrorIs(t, err, io.EOF)
			case <-time.After(time.Second):
				t.Fatal("pipeline didn't stop")
			}
			env.cancel()

			require.Equal(t, segment.Pattern(0x79), env.port.Pattern())
			require.Equal(t,
				strings.Repeat(MsgValidDigit, 4)+MsgInvalidDigit,
				env.transport.output())
			stats := env.pipeline.Stats()
			require.Equal(t, uint64(5), stats.Numeric.Received)
			require.Equal(t, uint64(5), stats.Raw.Received)
		})
	}
}

type pipeReadWriter struct {
	io.Reader
	io.Writer
}

func TestPipelineFinishesQueuedInputOnEOF(t *testing.T) {
	for _, scheduler := range []Scheduler{Preemptive, Cooperative} {
		t.Run(string(scheduler), func(t *testing.T) {
			for n := 0; n < 50; n++ {
				var out bytes.Buffer
				var port segment.Port
				tr := transport.NewStream(&pipeReadWriter{Reader: strings.NewReader("12345"), Writer: &out})
				p := New(Options{Scheduler: scheduler, QueueCapacity: 5, LoopInterval: time.Millisecond}, tr, &port, nil)
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				err := p.Run(ctx)
				cancel()
				require.ErrorIs(t, err, io.EOF)
				require.Equal(t, strings.Repeat(MsgValidDigit, 5), out.String())
				require.Equal(t, segment.Pattern(0x6D), port.Pattern())
			}
		})
	}
}

func TestPipelineInCallerLoop(t *testing.T) {
	tr := newTestTransport()
	var port segment.Port
	p := New(Options{}, tr, &port, nil)

	loop := fx.NewLoop().Add(p)
	loop.Interval = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()

	tr.type_("7")
	require.Eventually(t, func() bool { return port.Pattern() == 0x07 }, time.Second, time.Millisecond)
	tr.expectMsg(t, MsgValidDigit)

	cancel()
	select {
	case <-errCh:
	case <-time.After(time.Second):
		t.Fatal("loop didn't stop")
	}
}
