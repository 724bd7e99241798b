// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

// Transmit pipeline: begin composes and buffers the header, chunk buffers
// (and flushes as needed) body bytes, end appends the trailer and flushes
// whatever remains. Send/Query/Respond run all three phases
// back to back for a caller that already has the whole payload in hand;
// the multipart variants expose the phases directly for bodies produced
// incrementally.

func (in *Instance) useLockHooks() bool {
	return in.cfg.UseLock && in.hook.Claim != nil && in.hook.Release != nil
}

func (in *Instance) claimLock() bool {
	if in.useLockHooks() {
		return in.hook.Claim()
	}
	if in.softLocked {
		return false
	}
	in.softLocked = true
	return true
}

func (in *Instance) releaseLock() {
	if in.useLockHooks() {
		in.hook.Release()
		return
	}
	in.softLocked = false
}

func (in *Instance) begin(msg *Message, bodyLen int, listener Listener, onTimeout TimeoutListener, ticks int) error {
	if in.sending {
		return ErrMultipartPending
	}
	if bodyLen < 0 || uint32(bodyLen) > in.cfg.LenWidth.fullMask() {
		return ErrTooLong
	}
	// The header is composed into an empty buffer and end() flushes before
	// the trailer if it does not fit, so each only has to fit on its own.
	if in.headerLen() > len(in.sendBuf) || in.trailerLen() > len(in.sendBuf) {
		return ErrInvalidArgument
	}
	if !in.claimLock() {
		return ErrLocked
	}

	n := in.composeHeader(in.sendBuf, msg, bodyLen)
	in.sendPos = n
	in.sendLen = int64(bodyLen)
	in.sendSent = 0
	in.sendAcc = in.cks.start()
	in.sending = true

	if listener != nil {
		if !in.addIDListenerInternal(msg.FrameID, listener, onTimeout, ticks) {
			in.sending = false
			in.releaseLock()
			return ErrTableFull
		}
	}
	return nil
}

func (in *Instance) chunk(p []byte) error {
	if !in.sending {
		return ErrInvalidArgument
	}
	for len(p) > 0 {
		if in.sendPos == len(in.sendBuf) {
			if err := in.flush(); err != nil {
				return err
			}
		}
		space := len(in.sendBuf) - in.sendPos
		take := len(p)
		if take > space {
			take = space
		}
		n := composeBodyChunk(in.sendBuf[in.sendPos:in.sendPos+take], p[:take], in.cks, &in.sendAcc)
		in.sendPos += n
		in.sendSent += int64(n)
		p = p[n:]
	}
	return nil
}

func (in *Instance) end() error {
	if !in.sending {
		return ErrInvalidArgument
	}
	defer func() {
		in.sending = false
		in.releaseLock()
	}()

	if in.sendLen > 0 {
		tw := in.trailerLen()
		if len(in.sendBuf)-in.sendPos < tw {
			if err := in.flush(); err != nil {
				return err
			}
		}
		in.sendPos += composeTrailer(in.sendBuf[in.sendPos:], in.cks, in.sendAcc)
	}
	return in.flush()
}

func (in *Instance) flush() error {
	if in.sendPos == 0 {
		return nil
	}
	if in.hook.Write == nil {
		return ErrNoSink
	}
	if err := in.hook.Write(in.sendBuf[:in.sendPos]); err != nil {
		return err
	}
	in.sendPos = 0
	return nil
}

// Send composes and transmits a one-shot, non-response frame.
func (in *Instance) Send(msg *Message) error {
	msg.IsResponse = false
	if err := in.begin(msg, len(msg.Payload), nil, nil, 0); err != nil {
		return err
	}
	if err := in.chunk(msg.Payload); err != nil {
		return err
	}
	return in.end()
}

// Query sends a one-shot, non-response frame and registers onMsg against
// the allocated frame ID. ticks == 0 means the listener never expires;
// otherwise it is removed (and onTimeout, if set, invoked) after that many
// Tick calls without a matching response.
func (in *Instance) Query(msg *Message, onMsg Listener, onTimeout TimeoutListener, ticks int) error {
	msg.IsResponse = false
	if err := in.begin(msg, len(msg.Payload), onMsg, onTimeout, ticks); err != nil {
		return err
	}
	if err := in.chunk(msg.Payload); err != nil {
		return err
	}
	return in.end()
}

// Respond sends a frame reusing msg.FrameID as-is, marked as a response.
func (in *Instance) Respond(msg *Message) error {
	msg.IsResponse = true
	if err := in.begin(msg, len(msg.Payload), nil, nil, 0); err != nil {
		return err
	}
	if err := in.chunk(msg.Payload); err != nil {
		return err
	}
	return in.end()
}

// BeginSend starts a multipart, non-response send of a body bodyLen bytes
// long. msg.Payload is ignored; the body is supplied via one or more
// MultipartPayload calls and finished with MultipartClose.
func (in *Instance) BeginSend(msg *Message, bodyLen int) error {
	msg.IsResponse = false
	msg.Payload = nil
	return in.begin(msg, bodyLen, nil, nil, 0)
}

// BeginQuery is BeginSend plus response-listener registration.
func (in *Instance) BeginQuery(msg *Message, bodyLen int, onMsg Listener, onTimeout TimeoutListener, ticks int) error {
	msg.IsResponse = false
	msg.Payload = nil
	return in.begin(msg, bodyLen, onMsg, onTimeout, ticks)
}

// BeginRespond is BeginSend for a response frame, reusing msg.FrameID.
func (in *Instance) BeginRespond(msg *Message, bodyLen int) error {
	msg.IsResponse = true
	msg.Payload = nil
	return in.begin(msg, bodyLen, nil, nil, 0)
}

// MultipartPayload appends another chunk of a multipart body in progress.
// The sum of all chunks passed across a multipart send must equal the
// bodyLen given to the matching Begin* call.
func (in *Instance) MultipartPayload(p []byte) error {
	return in.chunk(p)
}

// MultipartClose finalizes and flushes a multipart send started with
// Begin Send/Query/Respond.
func (in *Instance) MultipartClose() error {
	return in.end()
}
