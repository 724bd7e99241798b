// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

// Message is the in-memory application view of a frame.
// Payload is borrowed — from the parser's receive buffer on delivery, or
// from the caller's buffer on transmit — and must not be retained past the
// callback/call that received it.
type Message struct {
	FrameID    uint32
	IsResponse bool
	Type       uint32
	Payload    []byte

	// UserData1/UserData2 are opaque words aliased into an ID listener's
	// stored state across a dispatch: the engine copies the listener's
	// words into the message before invoking its callback, then copies
	// the message's (possibly mutated) words back into the listener
	// afterward.
	UserData1 uintptr
	UserData2 uintptr
}

// Result is the directive an application callback returns from a listener
// invocation.
type Result uint8

const (
	// ResultNext means "not handled, keep searching" — dispatch continues
	// to the next listener/tier.
	ResultNext Result = iota
	// ResultStay means "handled, keep the listener live."
	ResultStay
	// ResultRenew means "handled, reset this ID listener's expiry." Treated
	// as ResultStay for type/generic listeners, for which renewal is
	// meaningless.
	ResultRenew
	// ResultClose means "handled, remove this listener." The engine trusts
	// the callback to have released any resources referenced by UserData.
	ResultClose
)

// Listener is invoked when a matching frame is dispatched to it.
type Listener func(msg *Message) Result

// TimeoutListener is invoked when an ID listener's expiry elapses with no
// matching frame. It receives no message.
type TimeoutListener func()
