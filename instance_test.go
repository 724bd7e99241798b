// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

import "testing"

func TestNewDefaultsToAwaitSOF(t *testing.T) {
	in := New(PeerA, Hooks{Write: func([]byte) error { return nil }})
	if in.state != stateAwaitSOF {
		t.Fatalf("state = %v, want stateAwaitSOF", in.state)
	}
	if cap(in.rxBuf) != DefaultConfig.RxBufferCap {
		t.Fatalf("rxBuf cap = %d, want %d", cap(in.rxBuf), DefaultConfig.RxBufferCap)
	}
}

func TestNewWithoutSOFStartsAtID(t *testing.T) {
	in := New(PeerA, Hooks{Write: func([]byte) error { return nil }}, WithoutSOF())
	if in.state != stateID {
		t.Fatalf("state = %v, want stateID", in.state)
	}
}

func TestResetReturnsToRestingState(t *testing.T) {
	in := New(PeerA, Hooks{Write: func([]byte) error { return nil }})
	in.AcceptByte(in.cfg.SOFByte)
	in.AcceptByte(0x01) // completes the 1-byte ID field; the parser is now mid-header
	if in.atRest() {
		t.Fatal("parser should not be at rest mid-frame")
	}
	in.Reset()
	if !in.atRest() {
		t.Fatal("Reset should return the parser to its resting state")
	}
}

func TestResetPreservesUserData(t *testing.T) {
	in := New(PeerA, Hooks{Write: func([]byte) error { return nil }})
	in.UserData = "keep me"
	in.UserTag = 42
	in.Reset()
	if in.UserData != "keep me" || in.UserTag != 42 {
		t.Fatalf("Reset must not clear UserData/UserTag, got %v/%d", in.UserData, in.UserTag)
	}
}

func TestTickExpiresIDListener(t *testing.T) {
	in := New(PeerA, Hooks{Write: func([]byte) error { return nil }})
	fired := false
	in.AddIDListener(99, func(*Message) Result { return ResultStay }, func() { fired = true }, 2)

	in.Tick()
	if fired {
		t.Fatal("timeout fired too early")
	}
	in.Tick()
	if !fired {
		t.Fatal("timeout listener never fired")
	}
	if in.RenewIDListener(99) {
		t.Fatal("expired listener should no longer be renewable")
	}
}
