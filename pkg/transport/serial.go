package transport

import (
	"fmt"

	"go.bug.st/serial"
)

// DefaultBaudRate is the link speed of the board.
const DefaultBaudRate = 9600

// OpenSerial opens a serial port with 8 data bits, no parity and
// one stop bit.
func OpenSerial(name string, baudRate int) (*Stream, error) {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %q error: %v", name, err)
	}
	return NewStream(port), nil
}
