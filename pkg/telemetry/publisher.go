// Package telemetry publishes pipeline events of a board.
package telemetry

import (
	"context"
	"io"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/robotalks/scoreboard/pkg/queue"
	"github.com/robotalks/scoreboard/pkg/scoreboard"
	"github.com/robotalks/scoreboard/pkg/scoreboard/msgs"
	"github.com/robotalks/scoreboard/pkg/segment"
	"github.com/robotalks/scoreboard/pkg/transport/mqtt"
)

// Sink delivers an encoded event to a topic.
type Sink interface {
	Publish(topic string, payload []byte) error
}

// SinkFunc is func form of Sink.
type SinkFunc func(topic string, payload []byte) error

// Publish implements Sink.
func (f SinkFunc) Publish(topic string, payload []byte) error {
	return f(topic, payload)
}

// ConnSink publishes with QoS 0 on an MQTT connection.
func ConnSink(conn *mqtt.Conn) Sink {
	return SinkFunc(func(topic string, payload []byte) error {
		token := conn.Pub(topic, payload)
		token.Wait()
		return token.Error()
	})
}

// StatsFunc returns the current queue counters.
type StatsFunc func() scoreboard.Stats

// Publisher implements scoreboard.Observer. The events are buffered and
// published by Run, so the units are never blocked by the network.
// When the buffer is full, new events are dropped.
type Publisher struct {
	Sink    Sink
	BoardID string
	Session string
	// StatsInterval is the period of StatsEvent when Stats is set.
	StatsInterval time.Duration
	Stats         StatsFunc

	buffer *queue.Queue[msgs.Event]
	seq    uint64
	closer io.Closer
}

// NewPublisher creates a Publisher with a new session ID.
func NewPublisher(sink Sink, boardID string, bufferSize int) *Publisher {
	return &Publisher{
		Sink:    sink,
		BoardID: boardID,
		Session: uuid.NewString(),
		buffer:  queue.New[msgs.Event]("telemetry", bufferSize),
	}
}

// WithStats enables periodic StatsEvent.
func (p *Publisher) WithStats(fn StatsFunc) *Publisher {
	p.Stats = fn
	return p
}

// Name implements Named.
func (p *Publisher) Name() string {
	return "telemetry"
}

// KeystrokeReceived implements scoreboard.Observer.
func (p *Publisher) KeystrokeReceived(k scoreboard.RawKeystroke, numericQueued, rawQueued bool) {
	p.buffer.TryEnqueue(&msgs.KeystrokeEvent{
		Key:           uint32(k),
		NumericQueued: numericQueued,
		RawQueued:     rawQueued,
	})
}

// PatternShown implements scoreboard.Observer.
func (p *Publisher) PatternShown(v scoreboard.NumericValue, pattern segment.Pattern) {
	p.buffer.TryEnqueue(&msgs.DisplayEvent{
		Value:    int32(v),
		Pattern:  uint32(pattern),
		Fallback: !v.IsDigit(),
	})
}

// FeedbackSent implements scoreboard.Observer.
func (p *Publisher) FeedbackSent(k scoreboard.RawKeystroke, msg string) {
	p.buffer.TryEnqueue(&msgs.FeedbackEvent{
		Key:     uint32(k),
		Valid:   k.IsDigit(),
		Message: msg,
	})
}

// Lost returns the number of events dropped on a full buffer.
func (p *Publisher) Lost() uint64 {
	return p.buffer.Stats().Dropped
}

// Run implements Runnable. StatsEvent is published every StatsInterval
// regardless of other traffic.
func (p *Publisher) Run(ctx context.Context) error {
	if p.closer != nil {
		defer p.closer.Close()
	}
	var tick <-chan time.Time
	if p.Stats != nil && p.StatsInterval > 0 {
		ticker := time.NewTicker(p.StatsInterval)
		defer ticker.Stop()
		tick = ticker.C
	}
	topic := mqtt.BoardTopic(p.BoardID, mqtt.TopicEvents)
	for {
		ev, ok, err := p.buffer.DequeueUntil(ctx, tick)
		if err != nil {
			return err
		}
		if !ok {
			ev = p.statsEvent()
		}
		if err := p.publish(topic, ev); err != nil {
			glog.Warningf("telemetry publish %T error: %v", ev, err)
		}
	}
}

func (p *Publisher) statsEvent() *msgs.StatsEvent {
	stats := p.Stats()
	return &msgs.StatsEvent{
		Numeric: queueStats(stats.Numeric),
		Raw:     queueStats(stats.Raw),
		Lost:    p.Lost(),
	}
}

func (p *Publisher) publish(topic string, ev msgs.Event) error {
	typed, err := msgs.TypedFrom(ev)
	if err != nil {
		return err
	}
	p.seq++
	typed.Session, typed.Sequence = p.Session, p.seq
	typed.Timestamp = time.Now().UnixNano()
	data, err := typed.Encode()
	if err != nil {
		return err
	}
	if glog.V(4) {
		glog.Infof("telemetry %s #%d %s", topic, typed.Sequence, ev.String())
	}
	return p.Sink.Publish(topic, data)
}

func queueStats(s queue.Stats) *msgs.QueueStats {
	return &msgs.QueueStats{Sent: s.Sent, Dropped: s.Dropped, Received: s.Received}
}
