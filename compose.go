// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

// headerLen returns the number of bytes composeHeader will write for the
// current configuration: SOF + ID + LEN + TYPE + header checksum.
func (in *Instance) headerLen() int {
	n := widthLen(in.cfg.IDWidth) + widthLen(in.cfg.LenWidth) + widthLen(in.cfg.TypeWidth)
	if in.cfg.SOFEnabled {
		n++
	}
	n += in.cks.algo.width()
	return n
}

func (in *Instance) trailerLen() int {
	if in.cks.algo == ChecksumNone {
		return 0
	}
	return in.cks.algo.width()
}

// allocateID resolves the frame ID a non-response send should use: the
// next counter value with the peer bit stamped into the MSB.
func (in *Instance) allocateID() uint32 {
	w := in.cfg.IDWidth
	id := (in.nextID & w.maskWithoutTopBit())
	in.nextID = (in.nextID + 1) & w.fullMask()
	if in.peer == PeerB {
		id |= w.topBit()
	}
	return id
}

// writeField writes v big-endian into buf[pos:], feeding each byte into
// *acc, and returns the new write position.
func writeField(buf []byte, pos int, width FieldWidth, v uint32, cks checksum, acc *uint32) int {
	start := pos
	putWidth(buf[pos:pos+widthLen(width)], width, v)
	for _, b := range buf[start : start+widthLen(width)] {
		*acc = cks.add(*acc, b)
	}
	return pos + widthLen(width)
}

// composeHeader writes SOF+ID+LEN+TYPE+header-checksum into buf, resolving
// and storing the frame ID into msg.FrameID. buf must have capacity for
// at least headerLen() bytes. bodyLen is the payload length that will be
// declared in the LEN field (the caller may not have composed the body
// yet, e.g. in multipart sends).
func (in *Instance) composeHeader(buf []byte, msg *Message, bodyLen int) (n int) {
	if msg.IsResponse {
		// keep msg.FrameID as-is
	} else {
		msg.FrameID = in.allocateID()
	}

	acc := in.cks.start()
	pos := 0
	if in.cfg.SOFEnabled {
		buf[pos] = in.cfg.SOFByte
		acc = in.cks.add(acc, in.cfg.SOFByte)
		pos++
	}
	pos = writeField(buf, pos, in.cfg.IDWidth, msg.FrameID, in.cks, &acc)
	pos = writeField(buf, pos, in.cfg.LenWidth, uint32(bodyLen), in.cks, &acc)
	pos = writeField(buf, pos, in.cfg.TypeWidth, msg.Type, in.cks, &acc)

	if in.cks.algo != ChecksumNone {
		final := in.cks.finalize(acc)
		putWidth(buf[pos:pos+in.cks.algo.width()], checksumFieldWidth(in.cks.algo.width()), final)
		pos += in.cks.algo.width()
	}
	return pos
}

// composeBodyChunk copies p into buf verbatim, updating *acc to feed the
// running data checksum. It performs no length check against LEN; the
// transmit pipeline is responsible for that.
func composeBodyChunk(buf []byte, p []byte, cks checksum, acc *uint32) int {
	n := copy(buf, p)
	for _, b := range buf[:n] {
		*acc = cks.add(*acc, b)
	}
	return n
}

// composeTrailer finalizes *acc and writes the data checksum to buf.
func composeTrailer(buf []byte, cks checksum, acc uint32) int {
	if cks.algo == ChecksumNone {
		return 0
	}
	final := cks.finalize(acc)
	w := cks.algo.width()
	putWidth(buf[:w], checksumFieldWidth(w), final)
	return w
}

// checksumFieldWidth adapts a checksum width in bytes (0/1/2/4) to the
// FieldWidth type putWidth expects.
func checksumFieldWidth(w int) FieldWidth {
	switch w {
	case 1:
		return Width1
	case 2:
		return Width2
	case 4:
		return Width4
	default:
		return Width1
	}
}
