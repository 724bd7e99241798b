// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package payload

import "testing"

func TestBuilderParserRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	b := NewBigEndianBuilder(buf, nil)

	b.U8(0x7F)
	b.Bool(true)
	b.U16(0x1234)
	b.U32(0xDEADBEEF)
	b.I8(-3)
	b.I16(-1000)
	b.I32(-70000)
	b.Float32(3.5)
	b.String("hello")
	b.Buf([]byte{1, 2, 3})

	if !b.Ok() {
		t.Fatal("builder reported failure")
	}

	p := NewBigEndianParser(b.Bytes(), nil)
	if got := p.U8(); got != 0x7F {
		t.Fatalf("U8 = %#x, want 0x7F", got)
	}
	if got := p.Bool(); got != true {
		t.Fatalf("Bool = %v, want true", got)
	}
	if got := p.U16(); got != 0x1234 {
		t.Fatalf("U16 = %#x, want 0x1234", got)
	}
	if got := p.U32(); got != 0xDEADBEEF {
		t.Fatalf("U32 = %#x, want 0xDEADBEEF", got)
	}
	if got := p.I8(); got != -3 {
		t.Fatalf("I8 = %d, want -3", got)
	}
	if got := p.I16(); got != -1000 {
		t.Fatalf("I16 = %d, want -1000", got)
	}
	if got := p.I32(); got != -70000 {
		t.Fatalf("I32 = %d, want -70000", got)
	}
	if got := p.Float32(); got != 3.5 {
		t.Fatalf("Float32 = %v, want 3.5", got)
	}
	if got := p.String(); got != "hello" {
		t.Fatalf("String = %q, want %q", got, "hello")
	}
	buf3 := make([]byte, 3)
	if n := p.Buf(buf3); n != 3 {
		t.Fatalf("Buf returned %d, want 3", n)
	}
	if buf3[0] != 1 || buf3[1] != 2 || buf3[2] != 3 {
		t.Fatalf("Buf = %v, want [1 2 3]", buf3)
	}
	if !p.Ok() {
		t.Fatal("parser reported failure on a well-formed buffer")
	}
}

func TestBuilderOverflowSetsNotOk(t *testing.T) {
	buf := make([]byte, 2)
	b := NewLittleEndianBuilder(buf, nil)
	if !b.U16(1) {
		t.Fatal("first write should fit")
	}
	if b.U8(1) {
		t.Fatal("second write should overflow the 2-byte buffer")
	}
	if b.Ok() {
		t.Fatal("builder should be marked not-ok after an overflow")
	}
}

func TestBuilderFullHandlerCanRecover(t *testing.T) {
	buf := make([]byte, 2)
	recovered := false
	b := NewLittleEndianBuilder(buf, func(bb *Builder, needed int) bool {
		recovered = true
		bb.Rewind()
		return true
	})
	b.U16(1)
	if !b.U8(9) {
		t.Fatal("write should succeed after the full handler rewound the buffer")
	}
	if !recovered {
		t.Fatal("full handler was never invoked")
	}
}

func TestParserUnderrunSetsNotOk(t *testing.T) {
	buf := []byte{0x01}
	p := NewLittleEndianParser(buf, nil)
	if got := p.U8(); got != 1 {
		t.Fatalf("first read = %d, want 1", got)
	}
	if got := p.U16(); got != 0 {
		t.Fatalf("underrun read = %d, want 0", got)
	}
	if p.Ok() {
		t.Fatal("parser should be marked not-ok after an underrun")
	}
}

func TestParserTail(t *testing.T) {
	p := NewLittleEndianParser([]byte{1, 2, 3, 4}, nil)
	p.U16()
	if got := p.Tail(); len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("Tail() = %v, want [3 4]", got)
	}
}

func TestNilByteOrderDefaultsToNativeRoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	b := NewBuilder(buf, nil, nil)
	b.U32(0xCAFEBABE)

	p := NewParser(b.Bytes(), nil, nil)
	if got := p.U32(); got != 0xCAFEBABE {
		t.Fatalf("round trip through the native byte order = %#x, want 0xCAFEBABE", got)
	}
}
