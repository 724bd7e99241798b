// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

// Hooks are the host-provided collaborators. Write is
// required; Claim/Release are optional (nil means "use the internal
// soft-lock guard"). The optional error reporter is set through
// Config.ErrorReporter, not here.
type Hooks struct {
	// Write sends bytes to the transport. The engine assumes all bytes are
	// accepted before the call returns.
	Write func(p []byte) error

	// Claim/Release guard the send pipeline against concurrent transmits.
	// If either is nil, the engine falls back to an internal boolean guard,
	// which catches misuse on a single cooperative thread but is not a
	// real mutex.
	Claim   func() bool
	Release func()
}

type parserState uint8

const (
	stateAwaitSOF parserState = iota
	stateID
	stateLen
	stateType
	stateHeadCksum
	stateData
	stateDataCksum
)

// idListenerSlot holds one fixed-capacity ID-listener table entry. A nil fn
// means the slot is free.
type idListenerSlot struct {
	id             uint32
	fn             Listener
	onTimeout      TimeoutListener
	ticksRemaining int
	ticksOriginal  int
	userData1      uintptr
	userData2      uintptr
}

type typeListenerSlot struct {
	typ uint32
	fn  Listener
}

type genericListenerSlot struct {
	fn Listener
}

// Instance is one logical engine endpoint: receive state machine, transmit
// pipeline, listener registry, and shared checksum context.
// All parser/registry state belongs to the byte-producing caller's
// context; the host must serialize externally if bytes arrive from
// multiple contexts.
type Instance struct {
	peer Peer
	cfg  Config
	cks  checksum
	hook Hooks

	// Own state
	nextID uint32

	// Parser state
	state     parserState
	rxi       int
	idleTicks int
	discard   bool
	hdrAcc    uint32
	dataAcc   uint32
	refCksum  uint32
	curID     uint32
	curLen    uint32
	curType   uint32
	rxBuf     []byte

	// Transmit state
	sendBuf    []byte
	sendPos    int
	sendAcc    uint32
	sendLen    int64 // total body length declared for the in-flight send
	sendSent   int64 // body bytes chunked so far
	softLocked bool
	sending    bool

	// Listener tables
	idListeners   []idListenerSlot
	idHigh        int
	typeListeners []typeListenerSlot
	typeHigh      int
	genListeners  []genericListenerSlot
	genHigh       int

	// Public user data, carried across Reset.
	UserData any
	UserTag  uint32
}

// New constructs an Instance with the given peer bit, hooks, and options
// layered over DefaultConfig.
func New(peer Peer, hooks Hooks, opts ...Option) *Instance {
	cfg := DefaultConfig
	for _, fn := range opts {
		fn(&cfg)
	}
	return NewInto(&Instance{}, peer, hooks, cfg)
}

// NewInto initializes a caller-owned Instance in place (the "static
// allocation variant") and returns it. cfg is used directly rather than
// layered with options, matching the C template's constructor that takes
// a pre-built config struct.
func NewInto(in *Instance, peer Peer, hooks Hooks, cfg Config) *Instance {
	*in = Instance{
		peer: peer,
		cfg:  cfg,
		cks:  checksum{algo: cfg.Checksum, custom: cfg.CustomChecksum},
		hook: hooks,

		rxBuf:   make([]byte, cfg.RxBufferCap),
		sendBuf: make([]byte, cfg.TxBufferCap),

		idListeners:   make([]idListenerSlot, cfg.MaxIDListeners),
		typeListeners: make([]typeListenerSlot, cfg.MaxTypeListeners),
		genListeners:  make([]genericListenerSlot, cfg.MaxGenericListeners),
	}
	in.resetParserState()
	return in
}

// Reset returns the parser to its idle state without touching listeners.
func (in *Instance) Reset() {
	in.resetParserState()
}

func (in *Instance) resetParserState() {
	in.rxi = 0
	in.idleTicks = 0
	in.discard = false
	in.curID, in.curLen, in.curType = 0, 0, 0
	if in.cfg.SOFEnabled {
		in.state = stateAwaitSOF
	} else {
		in.state = stateID
		in.hdrAcc = in.cks.start()
	}
}

func (in *Instance) report(format string, args ...any) {
	if in.cfg.ErrorReporter != nil {
		in.cfg.ErrorReporter(format, args...)
	}
}

// Tick drives the parser-inactivity counter and listener-timeout expiry.
// It must be called at a steady application-chosen rate; that rate
// defines the unit of all timeouts.
func (in *Instance) Tick() {
	in.idleTicks++
	in.expireIDListeners()
}
