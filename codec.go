package hydrate

import "context"

// Codec decodes one encoded record into a Bag.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Decode decodes data holding a single record.
	Decode(data []byte) (Bag, error)
}

// DecodeInto decodes data with c and hydrates entityType from the record
// using mapping.
func (h *Hydrator) DecodeInto(ctx context.Context, c Codec, entityType string, data []byte, mapping Mapping) (any, error) {
	bag, err := decode(ctx, c, data)
	if err != nil {
		return nil, err
	}
	return h.HydrateInto(ctx, entityType, bag, mapping)
}

// DecodeSimple decodes data with c and hydrates entityType from the record
// with an inferred mapping.
func (h *Hydrator) DecodeSimple(ctx context.Context, c Codec, entityType string, data []byte) (any, error) {
	bag, err := decode(ctx, c, data)
	if err != nil {
		return nil, err
	}
	return h.SimpleHydrate(ctx, entityType, bag)
}

func decode(ctx context.Context, c Codec, data []byte) (Bag, error) {
	bag, err := c.Decode(data)
	if err != nil {
		err = &DecodeError{Err: ErrDecode, ContentType: c.ContentType(), Cause: err}
		emitRecordDecoded(ctx, c.ContentType(), len(data), 0, err)
		return nil, err
	}
	if bag == nil {
		bag = Bag{}
	}
	emitRecordDecoded(ctx, c.ContentType(), len(data), len(bag), nil)
	return bag, nil
}
