// Package json provides a JSON record codec.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/zoobzio/hydrate"
)

// jsonCodec implements hydrate.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec. Numbers decode as json.Number so integers keep
// their exact value and infer as int.
func New() hydrate.Codec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Decode decodes a JSON object.
func (c *jsonCodec) Decode(data []byte) (hydrate.Bag, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var bag hydrate.Bag
	if err := dec.Decode(&bag); err != nil {
		return nil, err
	}
	return bag, nil
}
