package mqtt

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Transport implements the scoreboard transport on a board's topics:
// keystrokes are read from <board>/key, feedback is written to <board>/out.
// The board meta is retained on <board>/meta while connected.
type Transport struct {
	Conn  *Conn
	Board BoardInfo

	metaJSON  []byte
	keySub    *Subscription
	keyCh     chan []byte
	closeCh   chan struct{}
	closeOnce sync.Once
	pending   []byte
}

// NewTransport creates a Transport, not connected yet.
func NewTransport(brokerURL string, board BoardInfo) (*Transport, error) {
	meta, err := json.Marshal(&board.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	// an empty retained meta tells observers the board is gone.
	opts.SetBinaryWill(topicPrefix+BoardTopic(board.ID, TopicMeta), nil, 1, true)
	t := &Transport{
		Conn:     NewConn(opts, topicPrefix),
		Board:    board,
		metaJSON: meta,
		keyCh:    make(chan []byte, 16),
		closeCh:  make(chan struct{}),
	}
	t.Conn.OnConnect = func(*Conn) { t.publishMeta(t.metaJSON) }
	return t, nil
}

// Open connects to the broker and subscribes the keystroke topic.
func (t *Transport) Open() error {
	if err := t.Conn.Connect(); err != nil {
		return fmt.Errorf("connect MQTT broker error: %v", err)
	}
	t.keySub = t.Conn.Sub(BoardTopic(t.Board.ID, TopicKey), Handler(t.handleKeys))
	t.keySub.Token.Wait()
	return t.keySub.Token.Error()
}

// ReadByte implements Transport.
func (t *Transport) ReadByte() (byte, error) {
	for len(t.pending) == 0 {
		select {
		case t.pending = <-t.keyCh:
		case <-t.closeCh:
			return 0, io.EOF
		}
	}
	b := t.pending[0]
	t.pending = t.pending[1:]
	return b, nil
}

// WriteByte implements Transport.
func (t *Transport) WriteByte(b byte) error {
	return t.publishOut([]byte{b})
}

// WriteString implements Transport. The whole string is one message.
func (t *Transport) WriteString(s string) error {
	return t.publishOut([]byte(s))
}

// Close implements io.Closer.
func (t *Transport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.closeCh)
		if t.keySub != nil {
			err = t.keySub.Close()
		}
		t.publishMeta(nil)
		t.Conn.Close()
	})
	return err
}

func (t *Transport) publishOut(payload []byte) error {
	token := t.Conn.Pub(BoardTopic(t.Board.ID, TopicOut), payload)
	token.Wait()
	return token.Error()
}

func (t *Transport) publishMeta(payload []byte) {
	token := t.Conn.PubWith(BoardTopic(t.Board.ID, TopicMeta), payload, 1, true)
	token.Wait()
}

func (t *Transport) handleKeys(_ string, payload []byte) {
	if len(payload) == 0 {
		return
	}
	select {
	case t.keyCh <- payload:
	case <-t.closeCh:
	}
}
