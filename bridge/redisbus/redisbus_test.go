// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package redisbus

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func TestDecodeRoundTripsRecord(t *testing.T) {
	rec := record{ID: 7, Type: 42, Payload: []byte("hello")}
	data, err := cbor.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	msg, err := Decode(map[string]any{"cbor": string(data)})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.FrameID != 7 || msg.Type != 42 || string(msg.Payload) != "hello" {
		t.Fatalf("decoded = %+v, want id=7 type=42 payload=hello", msg)
	}
}

func TestDecodeMissingFieldReturnsError(t *testing.T) {
	if _, err := Decode(map[string]any{}); err == nil {
		t.Fatal("expected an error for a missing cbor field")
	}
}
