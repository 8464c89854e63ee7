// Package transport provides the character link keystrokes come in from
// and feedback goes out to.
package transport

import (
	"io"
	"net"
	"os"
)

// Transport is a character-level link.
type Transport interface {
	// ReadByte blocks until one byte arrives.
	ReadByte() (byte, error)
	// WriteByte blocks until the byte is accepted by the link.
	WriteByte(byte) error
	// WriteString writes the bytes of s in order.
	WriteString(string) error
}

// Close closes t if it supports io.Closer.
func Close(t Transport) error {
	if closer, ok := t.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Stream implements Transport over io.ReadWriter, one byte per
// Read/Write call, without buffering.
type Stream struct {
	io.ReadWriter

	rbuf [1]byte
	wbuf [1]byte
}

// NewStream creates a Stream.
func NewStream(rw io.ReadWriter) *Stream {
	return &Stream{ReadWriter: rw}
}

// ReadByte implements Transport.
func (s *Stream) ReadByte() (byte, error) {
	for {
		n, err := s.Read(s.rbuf[:])
		if n == 1 {
			return s.rbuf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// WriteByte implements Transport.
func (s *Stream) WriteByte(b byte) error {
	s.wbuf[0] = b
	_, err := s.Write(s.wbuf[:])
	return err
}

// WriteString implements Transport.
func (s *Stream) WriteString(str string) error {
	for i := 0; i < len(str); i++ {
		if err := s.WriteByte(str[i]); err != nil {
			return err
		}
	}
	return nil
}

// Close implements io.Closer.
func (s *Stream) Close() error {
	if closer, ok := s.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

type stdio struct {
	io.Reader
	io.Writer
}

// Stdio is the Stream over os.Stdin and os.Stdout.
func Stdio() *Stream {
	return NewStream(&stdio{Reader: os.Stdin, Writer: os.Stdout})
}

// DialTCP connects to a serial-over-TCP bridge.
func DialTCP(addr string) (*Stream, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewStream(conn), nil
}
