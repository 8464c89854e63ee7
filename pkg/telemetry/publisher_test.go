package telemetry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/scoreboard/pkg/queue"
	"github.com/robotalks/scoreboard/pkg/scoreboard"
	"github.com/robotalks/scoreboard/pkg/scoreboard/msgs"
	"github.com/robotalks/scoreboard/pkg/segment"
)

type recordingSink struct {
	lock   sync.Mutex
	topics []string
	typed  []*msgs.Typed
	ch     chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{ch: make(chan struct{}, 1024)}
}

func (s *recordingSink) Publish(topic string, payload []byte) error {
	typed, err := msgs.DecodeTyped(payload)
	if err != nil {
		return err
	}
	s.lock.Lock()
	s.topics = append(s.topics, topic)
	s.typed = append(s.typed, typed)
	s.lock.Unlock()
	s.ch <- struct{}{}
	return nil
}

func (s *recordingSink) wait(t *testing.T, n int) []*msgs.Typed {
	for i := 0; i < n; i++ {
		select {
		case <-s.ch:
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for event %d", i+1)
		}
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]*msgs.Typed(nil), s.typed...)
}

var _ scoreboard.Observer = &Publisher{}

func TestPublisherPublishesEvents(t *testing.T) {
	sink := newRecordingSink()
	p := NewPublisher(sink, "lobby", 8)
	p.KeystrokeReceived('3', true, true)
	p.PatternShown(3, segment.Table[3])
	p.FeedbackSent('3', scoreboard.MsgValidDigit)
	p.PatternShown(-16, segment.Table[segment.FallbackIndex])

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	typed := sink.wait(t, 4)
	cancel()
	require.Equal(t, context.Canceled, <-done)

	for n, tp := range typed {
		require.Equal(t, p.Session, tp.Session)
		require.Equal(t, uint64(n+1), tp.Sequence)
		require.Equal(t, "lobby/events", sink.topics[n])
	}
	ev, err := typed[0].Decode()
	require.NoError(t, err)
	require.Equal(t, &msgs.KeystrokeEvent{Key: '3', NumericQueued: true, RawQueued: true}, ev)
	ev, err = typed[1].Decode()
	require.NoError(t, err)
	require.Equal(t, &msgs.DisplayEvent{Value: 3, Pattern: 0x4F}, ev)
	ev, err = typed[2].Decode()
	require.NoError(t, err)
	require.Equal(t, &msgs.FeedbackEvent{Key: '3', Valid: true, Message: "Valid digit was entered."}, ev)
	ev, err = typed[3].Decode()
	require.NoError(t, err)
	require.Equal(t, &msgs.DisplayEvent{Value: -16, Pattern: 0x79, Fallback: true}, ev)
}

func TestPublisherDropsOnFullBuffer(t *testing.T) {
	p := NewPublisher(newRecordingSink(), "lobby", 2)
	for i := 0; i < 5; i++ {
		p.KeystrokeReceived('1', true, true)
	}
	require.Equal(t, uint64(3), p.Lost())
}

func TestPublisherStats(t *testing.T) {
	sink := newRecordingSink()
	p := NewPublisher(sink, "lobby", 2).WithStats(func() scoreboard.Stats {
		return scoreboard.Stats{
			Numeric: queue.Stats{Sent: 5, Dropped: 2, Received: 5},
			Raw:     queue.Stats{Sent: 7, Received: 6},
		}
	})
	p.StatsInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	typed := sink.wait(t, 1)
	cancel()
	<-done

	require.Equal(t, msgs.StatsEventTypeID, typed[0].TypeId)
	ev, err := typed[0].Decode()
	require.NoError(t, err)
	stats := ev.(*msgs.StatsEvent)
	require.Equal(t, uint64(2), stats.Numeric.Dropped)
	require.Equal(t, uint64(6), stats.Raw.Received)
}

func TestPublisherStatsUnderTraffic(t *testing.T) {
	sink := newRecordingSink()
	p := NewPublisher(sink, "lobby", 8).WithStats(func() scoreboard.Stats {
		return scoreboard.Stats{}
	})
	p.StatsInterval = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	keysDone := make(chan struct{})
	go func() {
		defer close(keysDone)
		ticker := time.NewTicker(5 * time.Millisecond)
		defer ticker.Stop()
		expire := time.After(300 * time.Millisecond)
		for {
			select {
			case <-ticker.C:
				p.KeystrokeReceived('5', true, true)
			case <-expire:
				return
			}
		}
	}()
	<-keysDone
	cancel()
	require.Equal(t, context.Canceled, <-done)

	sink.lock.Lock()
	defer sink.lock.Unlock()
	var keystrokes, stats int
	for _, typed := range sink.typed {
		switch typed.TypeId {
		case msgs.KeystrokeEventTypeID:
			keystrokes++
		case msgs.StatsEventTypeID:
			stats++
		}
	}
	require.NotZero(t, keystrokes)
	require.GreaterOrEqual(t, stats, 1)
}
