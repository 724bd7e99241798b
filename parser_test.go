// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

import (
	"bytes"
	"testing"
)

func TestParserRoundTripASCIIPayload(t *testing.T) {
	var wire bytes.Buffer
	sender := newTestInstance(PeerA)
	sender.hook.Write = func(p []byte) error { wire.Write(p); return nil }

	msg := Message{Type: 9, Payload: []byte("hello tinyframe")}
	if err := sender.Send(&msg); err != nil {
		t.Fatalf("send: %v", err)
	}

	receiver := newTestInstance(PeerB)
	var got *Message
	receiver.AddGenericListener(func(m *Message) Result {
		cp := *m
		cp.Payload = append([]byte(nil), m.Payload...)
		got = &cp
		return ResultClose
	})
	receiver.AcceptBuffer(wire.Bytes())

	if got == nil {
		t.Fatal("message never delivered")
	}
	if string(got.Payload) != "hello tinyframe" {
		t.Fatalf("payload = %q", got.Payload)
	}
	if got.Type != 9 {
		t.Fatalf("type = %d, want 9", got.Type)
	}
	if got.IsResponse {
		t.Fatal("is_response must never be set on a delivered message")
	}
}

func TestParserEmptyBodyDeliversImmediately(t *testing.T) {
	var wire bytes.Buffer
	sender := newTestInstance(PeerA)
	sender.hook.Write = func(p []byte) error { wire.Write(p); return nil }
	if err := sender.Send(&Message{Type: 1}); err != nil {
		t.Fatalf("send: %v", err)
	}

	receiver := newTestInstance(PeerB)
	delivered := false
	receiver.AddGenericListener(func(m *Message) Result {
		delivered = true
		if len(m.Payload) != 0 {
			t.Fatalf("payload = %v, want empty", m.Payload)
		}
		return ResultClose
	})
	receiver.AcceptBuffer(wire.Bytes())
	if !delivered {
		t.Fatal("zero-length frame never delivered")
	}
}

func TestParserOversizeFrameDiscardedWithoutDelivery(t *testing.T) {
	receiver := newTestInstance(PeerB, WithRxBufferCap(4))
	var sender bytes.Buffer
	s := newTestInstance(PeerA)
	s.hook.Write = func(p []byte) error { sender.Write(p); return nil }

	delivered := false
	receiver.AddGenericListener(func(*Message) Result {
		delivered = true
		return ResultClose
	})

	if err := s.Send(&Message{Type: 2, Payload: []byte("this payload is too long")}); err != nil {
		t.Fatalf("send: %v", err)
	}
	receiver.AcceptBuffer(sender.Bytes())
	if delivered {
		t.Fatal("oversize frame must not be delivered")
	}
	if !receiver.atRest() {
		t.Fatal("parser must return to rest after discarding an oversize frame")
	}
}

func TestParserChecksumMismatchDropsFrame(t *testing.T) {
	var wire bytes.Buffer
	sender := newTestInstance(PeerA)
	sender.hook.Write = func(p []byte) error { wire.Write(p); return nil }
	if err := sender.Send(&Message{Type: 4, Payload: []byte("abc")}); err != nil {
		t.Fatalf("send: %v", err)
	}

	corrupted := append([]byte(nil), wire.Bytes()...)
	corrupted[len(corrupted)-1] ^= 0xFF // flip every bit of the last data checksum byte

	receiver := newTestInstance(PeerB)
	delivered := false
	receiver.AddGenericListener(func(*Message) Result {
		delivered = true
		return ResultClose
	})
	receiver.AcceptBuffer(corrupted)
	if delivered {
		t.Fatal("corrupted frame must not be delivered")
	}
}

func TestParserSOFResyncAfterGarbage(t *testing.T) {
	var wire bytes.Buffer
	sender := newTestInstance(PeerA)
	sender.hook.Write = func(p []byte) error { wire.Write(p); return nil }
	if err := sender.Send(&Message{Type: 6, Payload: []byte("sync")}); err != nil {
		t.Fatalf("send: %v", err)
	}

	receiver := newTestInstance(PeerB)
	var gotPayload []byte
	receiver.AddGenericListener(func(m *Message) Result {
		gotPayload = append([]byte(nil), m.Payload...)
		return ResultClose
	})

	garbage := []byte{0xFF, 0xFF, 0xFF}
	receiver.AcceptBuffer(garbage)
	receiver.AcceptBuffer(wire.Bytes())

	if string(gotPayload) != "sync" {
		t.Fatalf("payload = %q, want %q (parser failed to resync on SOF)", gotPayload, "sync")
	}
}
