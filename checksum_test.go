// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

import "testing"

func runChecksum(algo ChecksumAlgorithm, custom CustomChecksum, data []byte) uint32 {
	c := checksum{algo: algo, custom: custom}
	acc := c.start()
	for _, b := range data {
		acc = c.add(acc, b)
	}
	return c.finalize(acc)
}

func TestChecksumNone(t *testing.T) {
	if got := runChecksum(ChecksumNone, CustomChecksum{}, []byte("anything")); got != 0 {
		t.Fatalf("got %#x, want 0", got)
	}
}

func TestChecksumXOR(t *testing.T) {
	data := []byte{0x01, 0x02, 0x04}
	want := uint32(^byte(0x01 ^ 0x02 ^ 0x04))
	if got := runChecksum(ChecksumXOR, CustomChecksum{}, data); got != want {
		t.Fatalf("got %#x, want %#x", got, want)
	}
}

func TestChecksumCRC8Empty(t *testing.T) {
	if got := runChecksum(ChecksumCRC8, CustomChecksum{}, nil); got != 0 {
		t.Fatalf("got %#x, want 0", got)
	}
}

func TestChecksumCRC16KnownVector(t *testing.T) {
	// "123456789" is the standard CRC-16/ARC ("CRC-16/IBM") check string;
	// this table (reflected, poly 0x8005, init 0) is that variant and its
	// well-known check value is 0xBB3D.
	got := runChecksum(ChecksumCRC16, CustomChecksum{}, []byte("123456789"))
	if got != 0xBB3D {
		t.Fatalf("got %#x, want 0xBB3D", got)
	}
}

func TestChecksumCRC32KnownVector(t *testing.T) {
	// Standard CRC-32/ISO-HDLC check value for "123456789" is 0xCBF43926.
	got := runChecksum(ChecksumCRC32, CustomChecksum{}, []byte("123456789"))
	if got != 0xCBF43926 {
		t.Fatalf("got %#x, want 0xCBF43926", got)
	}
}

func TestChecksumCustomHooks(t *testing.T) {
	custom := CustomChecksum{
		Start:    func() uint32 { return 7 },
		Add:      func(acc uint32, b byte) uint32 { return acc + uint32(b) },
		Finalize: func(acc uint32) uint32 { return acc % 256 },
	}
	got := runChecksum(ChecksumCustom8, custom, []byte{1, 2, 3})
	want := uint32((7 + 1 + 2 + 3) % 256)
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestChecksumAlgorithmWidth(t *testing.T) {
	cases := []struct {
		algo ChecksumAlgorithm
		want int
	}{
		{ChecksumNone, 0},
		{ChecksumXOR, 1},
		{ChecksumCRC8, 1},
		{ChecksumCRC16, 2},
		{ChecksumCRC32, 4},
		{ChecksumCustom8, 1},
		{ChecksumCustom16, 2},
		{ChecksumCustom32, 4},
	}
	for _, c := range cases {
		if got := c.algo.width(); got != c.want {
			t.Errorf("%v.width() = %d, want %d", c.algo, got, c.want)
		}
	}
}
