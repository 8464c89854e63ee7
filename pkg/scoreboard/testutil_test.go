package scoreboard

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/scoreboard/pkg/segment"
)

type testTransport struct {
	readCh    chan byte
	msgCh     chan string
	closeCh   chan struct{}
	closeOnce sync.Once

	lock    sync.Mutex
	written bytes.Buffer
}

func newTestTransport() *testTransport {
	return &testTransport{
		readCh:  make(chan byte, 16),
		msgCh:   make(chan string, 16),
		closeCh: make(chan struct{}),
	}
}

func (t *testTransport) ReadByte() (byte, error) {
	select {
	case b, ok := <-t.readCh:
		if !ok {
			return 0, io.EOF
		}
		return b, nil
	case <-t.closeCh:
		return 0, io.ErrClosedPipe
	}
}

func (t *testTransport) WriteByte(b byte) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.written.WriteByte(b)
}

func (t *testTransport) WriteString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := t.WriteByte(s[i]); err != nil {
			return err
		}
	}
	t.msgCh <- s
	return nil
}

func (t *testTransport) Close() error {
	t.closeOnce.Do(func() { close(t.closeCh) })
	return nil
}

func (t *testTransport) type_(keys string) {
	for i := 0; i < len(keys); i++ {
		t.readCh <- keys[i]
	}
}

func (t *testTransport) output() string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.written.String()
}

func (t *testTransport) expectMsg(tt *testing.T, msg string) {
	select {
	case s := <-t.msgCh:
		require.Equal(tt, msg, s)
	case <-time.After(time.Second):
		tt.Fatalf("expect message %q timeout", msg)
	}
}

type shownPattern struct {
	value   NumericValue
	pattern segment.Pattern
}

type recordingObserver struct {
	lock      sync.Mutex
	received  []RawKeystroke
	dropped   int
	shown     []shownPattern
	feedbacks []string
}

func (o *recordingObserver) KeystrokeReceived(k RawKeystroke, numericQueued, rawQueued bool) {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.received = append(o.received, k)
	if !numericQueued {
		o.dropped++
	}
	if !rawQueued {
		o.dropped++
	}
}

func (o *recordingObserver) PatternShown(v NumericValue, p segment.Pattern) {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.shown = append(o.shown, shownPattern{value: v, pattern: p})
}

func (o *recordingObserver) FeedbackSent(k RawKeystroke, msg string) {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.feedbacks = append(o.feedbacks, msg)
}
