// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

// Peer disambiguates the two endpoints of a point-to-point link so that
// independently allocated frame IDs never collide.
type Peer uint8

const (
	PeerA Peer = 0
	PeerB Peer = 1
)

// FieldWidth is the wire width, in bytes, of the ID/LEN/TYPE fields.
type FieldWidth uint8

const (
	Width1 FieldWidth = 1
	Width2 FieldWidth = 2
	Width4 FieldWidth = 4
)

func (w FieldWidth) valid() bool {
	return w == Width1 || w == Width2 || w == Width4
}

// maskWithoutTopBit returns the bitmask covering all bits of this width except the MSB,
// used to clear the peer bit from an allocated ID.
func (w FieldWidth) maskWithoutTopBit() uint32 {
	full := w.fullMask()
	return full >> 1
}

func (w FieldWidth) fullMask() uint32 {
	switch w {
	case Width1:
		return 0xFF
	case Width2:
		return 0xFFFF
	case Width4:
		return 0xFFFFFFFF
	default:
		return 0
	}
}

func (w FieldWidth) topBit() uint32 {
	switch w {
	case Width1:
		return 0x80
	case Width2:
		return 0x8000
	case Width4:
		return 0x80000000
	default:
		return 0
	}
}

// Config is the instance-time, never wire-negotiated configuration
// surface.
type Config struct {
	IDWidth   FieldWidth
	LenWidth  FieldWidth
	TypeWidth FieldWidth

	SOFEnabled bool
	SOFByte    byte

	Checksum       ChecksumAlgorithm
	CustomChecksum CustomChecksum

	// RxBufferCap bounds the payload length the receive parser will buffer.
	// Frames whose LEN exceeds this are consumed and discarded.
	RxBufferCap int

	// TxBufferCap sizes the fixed send buffer used by the transmit
	// pipeline's chunker. A single compose never requires more than
	// header+trailer to fit; bodies larger than TxBufferCap are streamed
	// in chunks, flushing whenever the buffer fills.
	TxBufferCap int

	MaxIDListeners      int
	MaxTypeListeners    int
	MaxGenericListeners int

	// ParserTimeoutTicks is the inactivity threshold. Zero disables the
	// inactivity reset.
	ParserTimeoutTicks int

	// UseLock, when false, makes the engine skip the claim/release hooks
	// even if supplied and use only the internal soft-lock boolean guard.
	UseLock bool

	ErrorReporter ErrorReporter
}

// DefaultConfig matches the original source's TF_Config.example.h defaults,
// adapted to this engine's richer (variable-width, optional-SOF) wire
// format: 1-byte ID/TYPE, 2-byte LEN, CRC-16, SOF enabled at 0x01.
var DefaultConfig = Config{
	IDWidth:   Width1,
	LenWidth:  Width2,
	TypeWidth: Width1,

	SOFEnabled: true,
	SOFByte:    0x01,

	Checksum: ChecksumCRC16,

	RxBufferCap: 1024,
	TxBufferCap: 128,

	MaxIDListeners:      20,
	MaxTypeListeners:    20,
	MaxGenericListeners: 4,

	ParserTimeoutTicks: 10,

	UseLock: true,
}

// Option mutates a Config. Functional options follow the common
// With-prefixed configuration pattern.
type Option func(*Config)

func WithIDWidth(w FieldWidth) Option   { return func(c *Config) { c.IDWidth = w } }
func WithLenWidth(w FieldWidth) Option  { return func(c *Config) { c.LenWidth = w } }
func WithTypeWidth(w FieldWidth) Option { return func(c *Config) { c.TypeWidth = w } }

// WithSOF enables the start-of-frame byte with the given value.
func WithSOF(b byte) Option {
	return func(c *Config) {
		c.SOFEnabled = true
		c.SOFByte = b
	}
}

// WithoutSOF disables the start-of-frame byte. Without SOF the parser
// cannot resynchronize after a corrupt frame.
func WithoutSOF() Option {
	return func(c *Config) { c.SOFEnabled = false }
}

func WithChecksum(algo ChecksumAlgorithm) Option {
	return func(c *Config) { c.Checksum = algo }
}

// WithCustomChecksum selects a custom algorithm and supplies its three
// operations; pair with ChecksumCustom{8,16,32} for the width.
func WithCustomChecksum(algo ChecksumAlgorithm, impl CustomChecksum) Option {
	return func(c *Config) {
		c.Checksum = algo
		c.CustomChecksum = impl
	}
}

func WithRxBufferCap(n int) Option { return func(c *Config) { c.RxBufferCap = n } }
func WithTxBufferCap(n int) Option { return func(c *Config) { c.TxBufferCap = n } }

func WithListenerCapacities(id, typ, generic int) Option {
	return func(c *Config) {
		c.MaxIDListeners = id
		c.MaxTypeListeners = typ
		c.MaxGenericListeners = generic
	}
}

func WithParserTimeoutTicks(n int) Option {
	return func(c *Config) { c.ParserTimeoutTicks = n }
}

// WithoutLock disables the claim/release hooks even if supplied, falling
// back to the internal soft-lock guard.
func WithoutLock() Option { return func(c *Config) { c.UseLock = false } }

func WithErrorReporter(r ErrorReporter) Option {
	return func(c *Config) { c.ErrorReporter = r }
}
