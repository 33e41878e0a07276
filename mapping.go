package hydrate

import (
	"fmt"
	"sort"
)

// Entry describes how one source key maps to one target field.
type Entry struct {
	Source string    // Key in the source value bag
	Field  string    // Target field name (or hydrate alias)
	Type   FieldType // Declared semantic type
}

// Mapping is an ordered list of entries applied in sequence.
// Later entries targeting the same field overwrite earlier ones.
type Mapping []Entry

// Shorthand returns an entry mapping source to field as a string.
func Shorthand(source, field string) Entry {
	return Entry{Source: source, Field: field, Type: TypeString}
}

// Field returns a structured entry with an explicit type.
func Field(source, field string, ft FieldType) Entry {
	return Entry{Source: source, Field: field, Type: ft}
}

// MappingFromMap builds a mapping from its loose form. Each value is either a
// string (shorthand: target field name, type string) or a map holding "name"
// and an optional "type". Entries are ordered by source key.
//
// A structured value without "name" produces an entry with an empty Field,
// which fails with ErrInvalidMapping when hydrated.
func MappingFromMap(raw map[string]any) (Mapping, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := make(Mapping, 0, len(keys))
	for _, source := range keys {
		entry, err := parseLooseEntry(source, raw[source])
		if err != nil {
			return nil, err
		}
		m = append(m, entry)
	}
	return m, nil
}

// parseLooseEntry expands one loose mapping value into an entry.
func parseLooseEntry(source string, v any) (Entry, error) {
	switch val := v.(type) {
	case string:
		return Shorthand(source, val), nil
	case map[string]any:
		return structuredEntry(source, val["name"], val["type"]), nil
	case map[string]string:
		name, hasName := val["name"]
		var nameVal any
		if hasName {
			nameVal = name
		}
		return structuredEntry(source, nameVal, val["type"]), nil
	default:
		return Entry{}, fmt.Errorf("%w: entry for %q must be a string or a map, got %s",
			ErrInvalidMapping, source, typeOf(v))
	}
}

// structuredEntry builds an entry from the name and type members of a structured value.
func structuredEntry(source string, name, tag any) Entry {
	e := Entry{Source: source}
	if s, ok := name.(string); ok {
		e.Field = s
	}
	if s, ok := tag.(string); ok {
		e.Type = ParseFieldType(s)
	}
	return e
}
