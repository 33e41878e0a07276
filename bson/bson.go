// Package bson provides a BSON record codec.
package bson

import (
	"github.com/zoobzio/hydrate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bsonCodec implements hydrate.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() hydrate.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Decode decodes a BSON document. Top-level datetimes are converted to
// time.Time so they hydrate as timestamps.
func (c *bsonCodec) Decode(data []byte) (hydrate.Bag, error) {
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	bag := make(hydrate.Bag, len(doc))
	for k, v := range doc {
		if dt, ok := v.(primitive.DateTime); ok {
			bag[k] = dt.Time()
			continue
		}
		bag[k] = v
	}
	return bag, nil
}
