// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

// AcceptBuffer feeds a byte slice through the receive state machine in
// order.
func (in *Instance) AcceptBuffer(buf []byte) {
	for _, c := range buf {
		in.AcceptByte(c)
	}
}

// AcceptByte feeds one received byte through the receive state machine.
// Bytes are processed strictly in arrival order; a matching frame is
// dispatched synchronously, on the caller's stack, before AcceptByte
// returns.
func (in *Instance) AcceptByte(c byte) {
	// Inactivity timeout: reset before processing this byte if the parser
	// has been idle at the threshold and isn't already at its resting
	// position.
	if in.cfg.ParserTimeoutTicks > 0 && in.idleTicks >= in.cfg.ParserTimeoutTicks && !in.atRest() {
		in.report("tinyframe: parser inactivity timeout, resetting")
		in.resetParserState()
	}
	in.idleTicks = 0

	switch in.state {
	case stateAwaitSOF:
		in.acceptAwaitSOF(c)
	case stateID:
		in.acceptHeaderField(c, in.cfg.IDWidth, &in.curID, stateLen)
	case stateLen:
		in.acceptHeaderField(c, in.cfg.LenWidth, &in.curLen, stateType)
	case stateType:
		in.acceptTypeField(c)
	case stateHeadCksum:
		in.acceptHeadCksum(c)
	case stateData:
		in.acceptData(c)
	case stateDataCksum:
		in.acceptDataCksum(c)
	}
}

// atRest reports whether the parser is at its idle resting position: the
// one place the inactivity timeout must not fire, because there is no
// partially-parsed frame to abandon.
func (in *Instance) atRest() bool {
	if in.cfg.SOFEnabled {
		return in.state == stateAwaitSOF
	}
	return in.state == stateID && in.rxi == 0
}

func (in *Instance) acceptAwaitSOF(c byte) {
	if c != in.cfg.SOFByte {
		return
	}
	in.hdrAcc = in.cks.start()
	in.hdrAcc = in.cks.add(in.hdrAcc, c)
	in.discard = false
	in.state = stateID
	in.rxi = 0
}

// acceptHeaderField collects one big-endian multi-byte field (ID or LEN)
// shift-accumulating into *field, while also feeding the header checksum.
func (in *Instance) acceptHeaderField(c byte, width FieldWidth, field *uint32, next parserState) {
	in.hdrAcc = in.cks.add(in.hdrAcc, c)
	*field = (*field << 8) | uint32(c)
	in.rxi++
	if in.rxi == widthLen(width) {
		in.state = next
		in.rxi = 0
	}
}

func (in *Instance) acceptTypeField(c byte) {
	in.hdrAcc = in.cks.add(in.hdrAcc, c)
	in.curType = (in.curType << 8) | uint32(c)
	in.rxi++
	if in.rxi != widthLen(in.cfg.TypeWidth) {
		return
	}
	in.rxi = 0
	if in.cfg.Checksum == ChecksumNone {
		in.enterData()
		return
	}
	in.state = stateHeadCksum
	in.refCksum = 0
}

func (in *Instance) acceptHeadCksum(c byte) {
	in.refCksum = (in.refCksum << 8) | uint32(c)
	in.rxi++
	if in.rxi != in.cks.algo.width() {
		return
	}
	in.rxi = 0
	if in.cks.finalize(in.hdrAcc) != in.refCksum {
		in.report("tinyframe: header checksum mismatch")
		in.resetParserState()
		return
	}
	in.enterData()
}

// enterData handles the post-header transition: deliver immediately for a
// zero-length body, flag oversize frames for discard, and otherwise enter
// the payload-reading state with a fresh body accumulator.
func (in *Instance) enterData() {
	if in.curLen == 0 {
		in.deliver()
		in.resetParserState()
		return
	}
	if int(in.curLen) > len(in.rxBuf) {
		in.discard = true
		in.report("tinyframe: oversize frame, len=%d cap=%d", in.curLen, len(in.rxBuf))
	}
	in.dataAcc = in.cks.start()
	in.state = stateData
	in.rxi = 0
}

func (in *Instance) acceptData(c byte) {
	if in.discard {
		in.rxi++
	} else {
		in.dataAcc = in.cks.add(in.dataAcc, c)
		in.rxBuf[in.rxi] = c
		in.rxi++
	}
	if uint32(in.rxi) != in.curLen {
		return
	}
	in.rxi = 0
	if in.cks.algo == ChecksumNone {
		if !in.discard {
			in.deliver()
		}
		in.resetParserState()
		return
	}
	in.state = stateDataCksum
	in.refCksum = 0
}

func (in *Instance) acceptDataCksum(c byte) {
	in.refCksum = (in.refCksum << 8) | uint32(c)
	in.rxi++
	if in.rxi != in.cks.algo.width() {
		return
	}
	final := in.cks.finalize(in.dataAcc)
	if in.discard {
		in.report("tinyframe: discarded oversize frame complete")
		in.resetParserState()
		return
	}
	if final != in.refCksum {
		in.report("tinyframe: data checksum mismatch")
		in.resetParserState()
		return
	}
	in.deliver()
	in.resetParserState()
}

// deliver dispatches the just-validated message to the listener registry.
// is_response is never set on delivered messages: it is an outbound-only
// marker.
func (in *Instance) deliver() {
	msg := Message{
		FrameID: in.curID,
		Type:    in.curType,
		Payload: in.rxBuf[:in.curLen],
	}
	in.dispatch(&msg)
}
