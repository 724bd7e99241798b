// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

// putWidth writes the low w bytes of v into buf (which must have length w),
// big-endian: every multi-byte wire field is sent most-significant-byte first.
func putWidth(buf []byte, w FieldWidth, v uint32) {
	switch w {
	case Width1:
		buf[0] = byte(v)
	case Width2:
		buf[0] = byte(v >> 8)
		buf[1] = byte(v)
	case Width4:
		buf[0] = byte(v >> 24)
		buf[1] = byte(v >> 16)
		buf[2] = byte(v >> 8)
		buf[3] = byte(v)
	}
}

func widthLen(w FieldWidth) int { return int(w) }
