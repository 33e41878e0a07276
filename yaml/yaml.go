// Package yaml provides a YAML record codec.
package yaml

import (
	"github.com/zoobzio/hydrate"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements hydrate.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() hydrate.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Decode decodes a YAML mapping.
func (c *yamlCodec) Decode(data []byte) (hydrate.Bag, error) {
	var bag hydrate.Bag
	if err := yaml.Unmarshal(data, &bag); err != nil {
		return nil, err
	}
	return bag, nil
}
