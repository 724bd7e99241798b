// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package payload implements bounds-checked sequential payload
// encoding/decoding on top of a fixed byte slice, for building and reading
// tinyframe.Message.Payload without per-field allocation.
package payload

import (
	"encoding/binary"
	"math"

	"code.hybscloud.com/tinyframe/internal/bo"
)

// FullHandler is called when a write would overrun the buffer. needed is
// how many more bytes are required. Returning true tells the Builder the
// problem was handled (e.g. the buffer was flushed and rewound) and the
// write should be retried; returning false marks the builder permanently
// failed.
type FullHandler func(b *Builder, needed int) bool

// Builder writes fields sequentially into a fixed buffer, big- or
// little-endian, tracking a sticky Ok() flag instead of per-call errors
// (the buffer-builder idiom this package is modeled on).
type Builder struct {
	buf    []byte
	pos    int
	order  binary.ByteOrder
	onFull FullHandler
	ok     bool
}

// NewBuilder starts a Builder over buf using order for multi-byte fields.
// A nil order defaults to the host's native byte order.
func NewBuilder(buf []byte, order binary.ByteOrder, onFull FullHandler) *Builder {
	if order == nil {
		order = bo.Native()
	}
	return &Builder{buf: buf, order: order, onFull: onFull, ok: true}
}

// NewLittleEndianBuilder is NewBuilder with order fixed to little-endian.
func NewLittleEndianBuilder(buf []byte, onFull FullHandler) *Builder {
	return NewBuilder(buf, binary.LittleEndian, onFull)
}

// NewBigEndianBuilder is NewBuilder with order fixed to big-endian.
func NewBigEndianBuilder(buf []byte, onFull FullHandler) *Builder {
	return NewBuilder(buf, binary.BigEndian, onFull)
}

// Ok reports whether every write so far has succeeded.
func (b *Builder) Ok() bool { return b.ok }

// Len returns the number of bytes written so far.
func (b *Builder) Len() int { return b.pos }

// Bytes returns the written prefix of the underlying buffer.
func (b *Builder) Bytes() []byte { return b.buf[:b.pos] }

// Rewind resets the write position to the start of the buffer without
// clearing Ok().
func (b *Builder) Rewind() { b.pos = 0 }

func (b *Builder) checkCapacity(needed int) bool {
	if b.pos+needed <= len(b.buf) {
		return true
	}
	if b.onFull != nil && b.onFull(b, needed) && b.pos+needed <= len(b.buf) {
		return true
	}
	b.ok = false
	return false
}

// Buf writes p verbatim.
func (b *Builder) Buf(p []byte) bool {
	if !b.ok || !b.checkCapacity(len(p)) {
		return false
	}
	copy(b.buf[b.pos:], p)
	b.pos += len(p)
	return true
}

// String writes a length-prefixed (uint32) UTF-8 string. Unlike the C
// PayloadBuilder this never null-terminates: Go strings carry their own
// length, and a terminator byte would just be dead weight on the wire.
func (b *Builder) String(s string) bool {
	if !b.ok || !b.checkCapacity(4+len(s)) {
		return false
	}
	b.order.PutUint32(b.buf[b.pos:], uint32(len(s)))
	b.pos += 4
	copy(b.buf[b.pos:], s)
	b.pos += len(s)
	return true
}

// U8 writes a uint8.
func (b *Builder) U8(v uint8) bool {
	if !b.ok || !b.checkCapacity(1) {
		return false
	}
	b.buf[b.pos] = v
	b.pos++
	return true
}

// Bool writes a bool as one byte.
func (b *Builder) Bool(v bool) bool {
	if v {
		return b.U8(1)
	}
	return b.U8(0)
}

// U16 writes a uint16.
func (b *Builder) U16(v uint16) bool {
	if !b.ok || !b.checkCapacity(2) {
		return false
	}
	b.order.PutUint16(b.buf[b.pos:], v)
	b.pos += 2
	return true
}

// U32 writes a uint32.
func (b *Builder) U32(v uint32) bool {
	if !b.ok || !b.checkCapacity(4) {
		return false
	}
	b.order.PutUint32(b.buf[b.pos:], v)
	b.pos += 4
	return true
}

// I8 writes an int8.
func (b *Builder) I8(v int8) bool { return b.U8(uint8(v)) }

// I16 writes an int16.
func (b *Builder) I16(v int16) bool { return b.U16(uint16(v)) }

// I32 writes an int32.
func (b *Builder) I32(v int32) bool { return b.U32(uint32(v)) }

// Float32 writes an IEEE-754 float32.
func (b *Builder) Float32(f float32) bool { return b.U32(math.Float32bits(f)) }
