// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tinyframe implements a point-to-point binary framing protocol
// engine for reliable or best-effort byte transports (serial lines,
// sockets, pipes).
//
// Semantics and design:
//   - Wire format: SOF (optional) + ID + LEN + TYPE + header checksum +
//     PAYLOAD + data checksum, all multi-byte fields big-endian. Field
//     widths, SOF, and checksum algorithm are instance configuration, never
//     negotiated on the wire.
//   - The engine never blocks, sleeps, or spawns goroutines. It is driven
//     entirely by the caller: bytes arrive via AcceptByte/AcceptBuffer, time
//     passes via Tick, and frames leave via Send/Query/Respond composing
//     into a host-supplied byte sink.
//   - Listener dispatch is tiered (ID listeners, then type listeners, then
//     generic listeners) and strictly insertion-ordered within each tier,
//     matching a fixed-capacity table rather than a map so that behavior is
//     deterministic and the listener tables need no allocation after
//     construction. Each delivered message is passed to listeners as a
//     heap-allocated Message value.
package tinyframe
