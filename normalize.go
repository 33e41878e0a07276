package hydrate

import (
	"fmt"
	"reflect"
)

// Bag is a flat key to raw value record.
type Bag = map[string]any

// Normalize produces a Bag from a hydration source. Records are returned
// unchanged, other maps with string keys are copied, and structs (or non-nil
// pointers to structs) yield their exported fields keyed by field name.
func Normalize(input any) (Bag, error) {
	if bag, ok := input.(map[string]any); ok {
		return bag, nil
	}

	rv := reflect.ValueOf(input)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedSource)
	}

	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %s", ErrUnsupportedSource, rv.Type())
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", ErrUnsupportedSource, rv.Type().Key())
		}
		bag := make(Bag, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			bag[iter.Key().String()] = iter.Value().Interface()
		}
		return bag, nil

	case reflect.Struct:
		rt := rv.Type()
		bag := make(Bag, rt.NumField())
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			bag[sf.Name] = rv.Field(i).Interface()
		}
		return bag, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, rv.Type())
	}
}
