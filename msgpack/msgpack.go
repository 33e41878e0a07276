// Package msgpack provides a MessagePack record codec.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/hydrate"
)

// msgpackCodec implements hydrate.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() hydrate.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Decode decodes a MessagePack map. Timestamps arrive as time.Time.
func (c *msgpackCodec) Decode(data []byte) (hydrate.Bag, error) {
	var bag hydrate.Bag
	if err := msgpack.Unmarshal(data, &bag); err != nil {
		return nil, err
	}
	return bag, nil
}
