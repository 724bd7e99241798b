// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package payload

import (
	"encoding/binary"
	"math"

	"code.hybscloud.com/tinyframe/internal/bo"
)

// EmptyHandler is called when a read needs more bytes than remain. needed
// is how many more bytes are required. Returning true tells the Parser new
// data was made available (e.g. refilled and rewound) and the read should
// be retried; returning false marks the parser permanently failed, and
// every read from then on returns the zero value.
type EmptyHandler func(p *Parser, needed int) bool

// Parser reads fields sequentially from a fixed buffer, big- or
// little-endian, tracking a sticky Ok() flag instead of per-call errors.
type Parser struct {
	buf     []byte
	pos     int
	order   binary.ByteOrder
	onEmpty EmptyHandler
	ok      bool
}

// NewParser starts a Parser over buf using order for multi-byte fields. A
// nil order defaults to the host's native byte order.
func NewParser(buf []byte, order binary.ByteOrder, onEmpty EmptyHandler) *Parser {
	if order == nil {
		order = bo.Native()
	}
	return &Parser{buf: buf, order: order, onEmpty: onEmpty, ok: true}
}

// NewLittleEndianParser is NewParser with order fixed to little-endian.
func NewLittleEndianParser(buf []byte, onEmpty EmptyHandler) *Parser {
	return NewParser(buf, binary.LittleEndian, onEmpty)
}

// NewBigEndianParser is NewParser with order fixed to big-endian.
func NewBigEndianParser(buf []byte, onEmpty EmptyHandler) *Parser {
	return NewParser(buf, binary.BigEndian, onEmpty)
}

// Ok reports whether every read so far has succeeded.
func (p *Parser) Ok() bool { return p.ok }

// Remaining returns the number of unread bytes.
func (p *Parser) Remaining() int { return len(p.buf) - p.pos }

// Rewind resets the read position to the start of the buffer without
// clearing Ok().
func (p *Parser) Rewind() { p.pos = 0 }

// Tail returns the unread remainder of the buffer without advancing.
func (p *Parser) Tail() []byte { return p.buf[p.pos:] }

func (p *Parser) checkAvailable(needed int) bool {
	if p.pos+needed <= len(p.buf) {
		return true
	}
	if p.onEmpty != nil && p.onEmpty(p, needed) && p.pos+needed <= len(p.buf) {
		return true
	}
	p.ok = false
	return false
}

// Skip advances the read position by num bytes without returning them.
func (p *Parser) Skip(num int) {
	if !p.ok || !p.checkAvailable(num) {
		return
	}
	p.pos += num
}

// Buf reads exactly len(dst) bytes into dst, returning the number actually
// copied (0 if the read failed).
func (p *Parser) Buf(dst []byte) int {
	if !p.ok || !p.checkAvailable(len(dst)) {
		return 0
	}
	n := copy(dst, p.buf[p.pos:p.pos+len(dst)])
	p.pos += n
	return n
}

// String reads back a length-prefixed string written by Builder.String.
func (p *Parser) String() string {
	if !p.ok || !p.checkAvailable(4) {
		return ""
	}
	n := int(p.order.Uint32(p.buf[p.pos:]))
	p.pos += 4
	if !p.checkAvailable(n) {
		return ""
	}
	s := string(p.buf[p.pos : p.pos+n])
	p.pos += n
	return s
}

// U8 reads a uint8, or 0 if the read failed.
func (p *Parser) U8() uint8 {
	if !p.ok || !p.checkAvailable(1) {
		return 0
	}
	v := p.buf[p.pos]
	p.pos++
	return v
}

// Bool reads one byte as a bool.
func (p *Parser) Bool() bool { return p.U8() != 0 }

// U16 reads a uint16, or 0 if the read failed.
func (p *Parser) U16() uint16 {
	if !p.ok || !p.checkAvailable(2) {
		return 0
	}
	v := p.order.Uint16(p.buf[p.pos:])
	p.pos += 2
	return v
}

// U32 reads a uint32, or 0 if the read failed.
func (p *Parser) U32() uint32 {
	if !p.ok || !p.checkAvailable(4) {
		return 0
	}
	v := p.order.Uint32(p.buf[p.pos:])
	p.pos += 4
	return v
}

// I8 reads an int8, or 0 if the read failed.
func (p *Parser) I8() int8 { return int8(p.U8()) }

// I16 reads an int16, or 0 if the read failed.
func (p *Parser) I16() int16 { return int16(p.U16()) }

// I32 reads an int32, or 0 if the read failed.
func (p *Parser) I32() int32 { return int32(p.U32()) }

// Float32 reads an IEEE-754 float32, or 0 if the read failed.
func (p *Parser) Float32() float32 { return math.Float32frombits(p.U32()) }
