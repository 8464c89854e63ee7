package transport

import (
	"io"

	"golang.org/x/net/websocket"
)

// WebSocket implements Transport over websocket messages. Every
// received message is a run of keystrokes, every WriteString is sent
// as one message.
type WebSocket struct {
	Conn *websocket.Conn

	pending []byte
}

// NewWebSocket wraps websocket.Conn.
func NewWebSocket(conn *websocket.Conn) *WebSocket {
	return &WebSocket{Conn: conn}
}

// DialWebSocket connects to a websocket endpoint.
func DialWebSocket(url, origin string) (*WebSocket, error) {
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, err
	}
	return NewWebSocket(conn), nil
}

// ReadByte implements Transport.
func (w *WebSocket) ReadByte() (byte, error) {
	for len(w.pending) == 0 {
		if err := websocket.Message.Receive(w.Conn, &w.pending); err != nil {
			return 0, err
		}
	}
	b := w.pending[0]
	w.pending = w.pending[1:]
	return b, nil
}

// WriteByte implements Transport.
func (w *WebSocket) WriteByte(b byte) error {
	return websocket.Message.Send(w.Conn, []byte{b})
}

// WriteString implements Transport.
func (w *WebSocket) WriteString(s string) error {
	return websocket.Message.Send(w.Conn, []byte(s))
}

// Close implements io.Closer.
func (w *WebSocket) Close() error {
	return w.Conn.Close()
}

var _ io.Closer = &WebSocket{}
