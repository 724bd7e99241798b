// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

import "reflect"

// AddIDListener registers a callback for a specific frame ID. ticks == 0
// means the listener never expires.
func (in *Instance) AddIDListener(id uint32, fn Listener, onTimeout TimeoutListener, ticks int) bool {
	return in.addIDListenerInternal(id, fn, onTimeout, ticks)
}

func (in *Instance) addIDListenerInternal(id uint32, fn Listener, onTimeout TimeoutListener, ticks int) bool {
	for i := range in.idListeners {
		if in.idListeners[i].fn != nil {
			continue
		}
		in.idListeners[i] = idListenerSlot{
			id:             id,
			fn:             fn,
			onTimeout:      onTimeout,
			ticksRemaining: ticks,
			ticksOriginal:  ticks,
		}
		if i >= in.idHigh {
			in.idHigh = i + 1
		}
		return true
	}
	in.report("tinyframe: id listener table full")
	return false
}

// AddTypeListener registers a callback for all frames of a given type.
func (in *Instance) AddTypeListener(typ uint32, fn Listener) bool {
	for i := range in.typeListeners {
		if in.typeListeners[i].fn != nil {
			continue
		}
		in.typeListeners[i] = typeListenerSlot{typ: typ, fn: fn}
		if i >= in.typeHigh {
			in.typeHigh = i + 1
		}
		return true
	}
	in.report("tinyframe: type listener table full")
	return false
}

// AddGenericListener registers a fallback callback invoked when no ID or
// type listener handled a message.
func (in *Instance) AddGenericListener(fn Listener) bool {
	for i := range in.genListeners {
		if in.genListeners[i].fn != nil {
			continue
		}
		in.genListeners[i] = genericListenerSlot{fn: fn}
		if i >= in.genHigh {
			in.genHigh = i + 1
		}
		return true
	}
	in.report("tinyframe: generic listener table full")
	return false
}

// RemoveIDListener removes the listener registered for id, if any. If it
// carries non-null user-data, its callback is invoked once more with a nil
// payload so it can release that state.
func (in *Instance) RemoveIDListener(id uint32) bool {
	for i := 0; i < in.idHigh; i++ {
		if in.idListeners[i].fn == nil || in.idListeners[i].id != id {
			continue
		}
		in.cleanupIDListener(i)
		return true
	}
	return false
}

func (in *Instance) cleanupIDListener(i int) {
	lst := &in.idListeners[i]
	if (lst.userData1 != 0 || lst.userData2 != 0) && lst.fn != nil {
		msg := Message{FrameID: lst.id, UserData1: lst.userData1, UserData2: lst.userData2}
		lst.fn(&msg)
	}
	lst.fn = nil
	if i == in.idHigh-1 {
		in.idHigh--
	}
}

// RemoveTypeListener removes the listener registered for typ, if any.
func (in *Instance) RemoveTypeListener(typ uint32) bool {
	for i := 0; i < in.typeHigh; i++ {
		if in.typeListeners[i].fn == nil || in.typeListeners[i].typ != typ {
			continue
		}
		in.typeListeners[i].fn = nil
		if i == in.typeHigh-1 {
			in.typeHigh--
		}
		return true
	}
	return false
}

// RemoveGenericListener removes the first generic listener whose callback
// has the same code pointer as fn (see sameListener). Go func values aren't
// comparable, so callers that need removal should wrap their handler to also
// stash it somewhere identifiable, or prefer ResultClose from within the
// callback itself.
func (in *Instance) RemoveGenericListener(fn Listener) bool {
	for i := 0; i < in.genHigh; i++ {
		if in.genListeners[i].fn == nil {
			continue
		}
		if !sameListener(in.genListeners[i].fn, fn) {
			continue
		}
		in.genListeners[i].fn = nil
		if i == in.genHigh-1 {
			in.genHigh--
		}
		return true
	}
	return false
}

// RenewIDListener resets an ID listener's expiry to its original timeout,
// equivalent to that listener's callback returning ResultRenew.
func (in *Instance) RenewIDListener(id uint32) bool {
	for i := 0; i < in.idHigh; i++ {
		if in.idListeners[i].fn == nil || in.idListeners[i].id != id {
			continue
		}
		in.idListeners[i].ticksRemaining = in.idListeners[i].ticksOriginal
		return true
	}
	return false
}

// dispatch delivers msg to the tiered listener registry: ID listeners,
// then type listeners, then generic listeners. Dispatch stops at the
// first listener that returns anything other than ResultNext.
func (in *Instance) dispatch(msg *Message) {
	for i := 0; i < in.idHigh; i++ {
		lst := &in.idListeners[i]
		if lst.fn == nil || lst.id != msg.FrameID {
			continue
		}
		msg.UserData1, msg.UserData2 = lst.userData1, lst.userData2
		result := lst.fn(msg)
		lst.userData1, lst.userData2 = msg.UserData1, msg.UserData2
		switch result {
		case ResultNext:
			continue
		case ResultRenew:
			lst.ticksRemaining = lst.ticksOriginal
			return
		case ResultClose:
			lst.fn = nil
			if i == in.idHigh-1 {
				in.idHigh--
			}
			return
		default: // ResultStay
			return
		}
	}

	msg.UserData1, msg.UserData2 = 0, 0

	for i := 0; i < in.typeHigh; i++ {
		lst := &in.typeListeners[i]
		if lst.fn == nil || lst.typ != msg.Type {
			continue
		}
		result := lst.fn(msg)
		if result == ResultNext {
			continue
		}
		if result == ResultClose {
			lst.fn = nil
			if i == in.typeHigh-1 {
				in.typeHigh--
			}
		}
		return
	}

	for i := 0; i < in.genHigh; i++ {
		lst := &in.genListeners[i]
		if lst.fn == nil {
			continue
		}
		result := lst.fn(msg)
		if result == ResultNext {
			continue
		}
		if result == ResultClose {
			lst.fn = nil
			if i == in.genHigh-1 {
				in.genHigh--
			}
		}
		return
	}

	in.report("tinyframe: unhandled message id=%d type=%d", msg.FrameID, msg.Type)
}

// expireIDListeners decrements every live, timeout-bearing ID listener's
// remaining ticks once per Tick, firing the timeout callback and then
// freeing the slot through the same cleanup-delivery path RemoveIDListener
// uses, so a listener holding non-null user-data gets one last nil-payload
// callback to release it even when it expires instead of being removed.
func (in *Instance) expireIDListeners() {
	for i := 0; i < in.idHigh; i++ {
		lst := &in.idListeners[i]
		if lst.fn == nil || lst.ticksOriginal == 0 {
			continue
		}
		lst.ticksRemaining--
		if lst.ticksRemaining > 0 {
			continue
		}
		if lst.onTimeout != nil {
			lst.onTimeout()
		}
		in.cleanupIDListener(i)
	}
}

// sameListener compares two Listener values by their code pointers obtained
// through reflection, since Go func values are not directly comparable.
// Two closures created from the same function literal share a code pointer
// and therefore compare equal.
func sameListener(a, b Listener) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
