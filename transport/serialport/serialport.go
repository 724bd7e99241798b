// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package serialport adapts a go.bug.st/serial port into a tinyframe
// byte-sink plus a blocking read pump, for hosts talking to tinyframe peers
// over a UART.
package serialport

import (
	"io"

	"go.bug.st/serial"

	"code.hybscloud.com/tinyframe"
)

// Port wraps an open serial.Port for use as a tinyframe transport.
type Port struct {
	port serial.Port
}

// Open opens name at the given baud rate (8N1, no flow control) and returns
// a Port ready to drive an Instance.
func Open(name string, baud int) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	return &Port{port: p}, nil
}

// Write implements the tinyframe.Hooks.Write contract: the engine assumes
// the whole buffer is accepted before Write returns, which matches
// serial.Port.Write's blocking, whole-slice semantics.
func (p *Port) Write(buf []byte) error {
	_, err := p.port.Write(buf)
	return err
}

// Close closes the underlying port.
func (p *Port) Close() error {
	return p.port.Close()
}

// ReadLoop blocks, feeding every byte read from the port into inst via
// AcceptByte, until the port is closed or a read error occurs. It returns
// nil on a clean close (io.EOF), and the underlying error otherwise. Run it
// in its own goroutine; the caller is responsible for calling inst.Tick at
// a steady rate from elsewhere, since this loop only runs while bytes are
// arriving.
func ReadLoop(inst *tinyframe.Instance, port *Port) error {
	buf := make([]byte, 256)
	for {
		n, err := port.port.Read(buf)
		if n > 0 {
			inst.AcceptBuffer(buf[:n])
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}
