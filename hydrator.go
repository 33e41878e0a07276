package hydrate

import (
	"context"
	"reflect"
	"sync"
	"time"
)

// Hydrator populates registered entity types from loosely typed records.
//
// Hydrators are safe for concurrent use. Each Hydrator owns its type
// registry and metadata cache; nothing is shared between instances.
type Hydrator struct {
	logger  Logger
	coercer coercer

	// Entity types by name
	typesMu sync.RWMutex
	types   map[string]typeEntry
	names   map[reflect.Type]string

	// Field metadata by entity type name (built lazily, never evicted)
	metaMu sync.RWMutex
	meta   map[string]*Metadata
}

// New creates a Hydrator. Without options, warnings are emitted as capitan
// events and textual timestamps are parsed with DefaultTimeLayout in UTC.
func New(opts ...Option) *Hydrator {
	h := &Hydrator{
		logger:  capitanLogger{},
		coercer: coercer{layout: DefaultTimeLayout, loc: time.UTC},
		types:   make(map[string]typeEntry),
		names:   make(map[reflect.Type]string),
		meta:    make(map[string]*Metadata),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HydrateInto builds a new instance of entityType from source using mapping.
// source is a Bag, another map with string keys, or a struct whose exported
// fields are read. The result holds a pointer to the new instance.
//
// Missing source keys and missing target fields are logged and skipped.
// Malformed entries and values that fail coercion abort the hydration.
func (h *Hydrator) HydrateInto(ctx context.Context, entityType string, source any, mapping Mapping) (any, error) {
	bag, err := Normalize(source)
	if err != nil {
		return nil, err
	}

	md, err := h.metadata(ctx, entityType)
	if err != nil {
		return nil, err
	}

	return h.assign(ctx, md, bag, mapping)
}

// SimpleHydrate builds a new instance of entityType from a flat record,
// inferring the mapping from the record's values. Every key targets the
// field of the same name.
func (h *Hydrator) SimpleHydrate(ctx context.Context, entityType string, record Bag) (any, error) {
	mapping, err := Infer(entityType, record)
	if err != nil {
		return nil, err
	}

	md, err := h.metadata(ctx, entityType)
	if err != nil {
		return nil, err
	}

	return h.assign(ctx, md, record, mapping)
}

// assign walks mapping in order and writes coerced values into a fresh instance.
func (h *Hydrator) assign(ctx context.Context, md *Metadata, bag Bag, mapping Mapping) (result any, retErr error) {
	start := time.Now()
	emitHydrateStart(ctx, md.EntityType, len(mapping))

	assigned := 0
	defer func() {
		emitHydrateComplete(ctx, md.EntityType, time.Since(start), assigned, retErr)
	}()

	ptr := md.newInstance()
	inst := ptr.Elem()
	setter, _ := ptr.Interface().(FieldSetter)

	for i, entry := range mapping {
		if entry.Field == "" {
			return nil, &MappingError{
				Err:        ErrInvalidMapping,
				EntityType: md.EntityType,
				Source:     entry.Source,
				Position:   i,
			}
		}

		raw, ok := bag[entry.Source]
		if !ok {
			warnSourceMissing(ctx, h.logger, md.EntityType, entry.Source)
			continue
		}

		fd, ok := md.Field(entry.Field)
		if !ok {
			warnFieldMissing(ctx, h.logger, md.EntityType, entry.Field, entry.Source)
			continue
		}

		value, err := h.coercer.coerce(entry.Type, raw)
		if err != nil {
			return nil, newMismatchError(md.EntityType, entry, raw, err)
		}

		if setter != nil {
			err = setter.SetField(fd.Name, value)
		} else {
			err = fd.Set(inst, value)
		}
		if err != nil {
			return nil, newMismatchError(md.EntityType, entry, raw, err)
		}
		assigned++
	}

	return ptr.Interface(), nil
}

// Hydrate resolves T's registered name with h and hydrates a new *T from
// source using mapping.
func Hydrate[T any](ctx context.Context, h *Hydrator, source any, mapping Mapping) (*T, error) {
	name, err := Resolve[T](h)
	if err != nil {
		return nil, err
	}

	v, err := h.HydrateInto(ctx, name, source, mapping)
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}

// Simple resolves T's registered name with h and hydrates a new *T from
// record with an inferred mapping.
func Simple[T any](ctx context.Context, h *Hydrator, record Bag) (*T, error) {
	name, err := Resolve[T](h)
	if err != nil {
		return nil, err
	}

	v, err := h.SimpleHydrate(ctx, name, record)
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}
