package hydrate

import (
	"encoding/json"
	"reflect"
	"sort"
	"time"
)

// Infer derives a mapping from a flat record by classifying each value:
// integers map as TypeInt, strings as TypeString and time values as
// TypeTimestamp. Every entry targets the field named like its key.
//
// Entries follow order for keys it lists; remaining keys follow in sorted
// order. Any other value fails with ErrUnsupportedValueType.
func Infer(entityType string, record Bag, order ...string) (Mapping, error) {
	m := make(Mapping, 0, len(record))
	for _, key := range recordKeys(record, order) {
		ft, ok := classify(record[key])
		if !ok {
			return nil, &UnsupportedValueError{
				Err:        ErrUnsupportedValueType,
				EntityType: entityType,
				Key:        key,
				Actual:     typeOf(record[key]),
			}
		}
		m = append(m, Entry{Source: key, Field: key, Type: ft})
	}
	return m, nil
}

// recordKeys lists the keys of record, order first.
func recordKeys(record Bag, order []string) []string {
	keys := make([]string, 0, len(record))
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		if _, ok := record[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	rest := make([]string, 0, len(record)-len(keys))
	for k := range record {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}

// classify returns the field type inferred for a record value.
func classify(v any) (FieldType, bool) {
	switch val := v.(type) {
	case string:
		return TypeString, true
	case time.Time:
		return TypeTimestamp, true
	case *time.Time:
		return TypeTimestamp, val != nil
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return TypeInt, true
		}
		return TypeString, false
	}

	if v == nil {
		return TypeString, false
	}

	switch k := reflect.TypeOf(v).Kind(); {
	case isIntKind(k) || isUintKind(k):
		return TypeInt, true
	case k == reflect.String:
		return TypeString, true
	}
	return TypeString, false
}
