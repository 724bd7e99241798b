// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package redisbus republishes delivered tinyframe messages onto a Redis
// stream, CBOR-encoded, for hosts that want a durable, fan-out-friendly
// record of traffic alongside the engine's own in-process listeners.
package redisbus

import (
	"context"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/redis/go-redis/v9"

	"code.hybscloud.com/tinyframe"
)

// record is the CBOR-encoded shape published to the stream. Field names
// are short on purpose: this goes out on every delivered frame.
type record struct {
	ID      uint32 `cbor:"id"`
	Type    uint32 `cbor:"type"`
	Payload []byte `cbor:"payload"`
}

// Bus publishes delivered messages to a single Redis stream key.
type Bus struct {
	client *redis.Client
	ctx    context.Context
	stream string
}

// New builds a Bus backed by client, publishing to streamKey.
func New(client *redis.Client, streamKey string) *Bus {
	return &Bus{client: client, ctx: context.Background(), stream: streamKey}
}

// Listener returns a tinyframe.Listener suitable for
// Instance.AddGenericListener: it CBOR-encodes every message it sees and
// XAdds it to the configured stream, then always continues dispatch
// (ResultNext) so it never shadows a later generic listener.
func (b *Bus) Listener() tinyframe.Listener {
	return func(msg *tinyframe.Message) tinyframe.Result {
		rec := record{ID: msg.FrameID, Type: msg.Type, Payload: msg.Payload}
		data, err := cbor.Marshal(rec)
		if err != nil {
			return tinyframe.ResultNext
		}
		b.client.XAdd(b.ctx, &redis.XAddArgs{
			Stream: b.stream,
			Values: map[string]any{"cbor": data},
		})
		return tinyframe.ResultNext
	}
}

// Decode reconstructs a message previously published by Listener from a
// Redis stream entry's "cbor" field.
func Decode(values map[string]any) (tinyframe.Message, error) {
	raw, ok := values["cbor"].(string)
	if !ok {
		return tinyframe.Message{}, fmt.Errorf("redisbus: missing cbor field")
	}
	var rec record
	if err := cbor.Unmarshal([]byte(raw), &rec); err != nil {
		return tinyframe.Message{}, err
	}
	return tinyframe.Message{FrameID: rec.ID, Type: rec.Type, Payload: rec.Payload}, nil
}
