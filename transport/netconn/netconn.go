// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package netconn adapts a net.Conn into a tinyframe byte-sink plus a
// blocking read pump, for hosts talking to tinyframe peers over TCP, Unix
// domain sockets, or anything else behind the net.Conn interface.
package netconn

import (
	"errors"
	"io"
	"net"

	"code.hybscloud.com/tinyframe"
)

// Conn wraps a net.Conn for use as a tinyframe transport.
type Conn struct {
	conn net.Conn
}

// New wraps an already-dialed or already-accepted conn.
func New(conn net.Conn) *Conn {
	return &Conn{conn: conn}
}

// Write implements tinyframe.Hooks.Write. net.Conn.Write already blocks
// until the whole buffer is written or an error occurs, matching the
// engine's "assume all bytes accepted" contract.
func (c *Conn) Write(buf []byte) error {
	_, err := c.conn.Write(buf)
	return err
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// ReadLoop blocks, feeding bytes read from the connection into inst via
// AcceptByte, until the connection is closed or a read error occurs. It
// returns nil on a clean close (io.EOF), and the underlying error
// otherwise.
func ReadLoop(inst *tinyframe.Instance, conn *Conn) error {
	buf := make([]byte, 4096)
	for {
		n, err := conn.conn.Read(buf)
		if n > 0 {
			inst.AcceptBuffer(buf[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
