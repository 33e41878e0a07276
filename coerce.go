package hydrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeLayout is the layout textual timestamps are parsed with.
const DefaultTimeLayout = "2006-01-02 15:04:05"

var (
	errNotNumeric   = errors.New("value is not numeric")
	errOutOfRange   = errors.New("value is out of int64 range")
	errNotTimestamp = errors.New("value is not a timestamp")
)

// coercer converts raw values into the declared semantic type of a field.
type coercer struct {
	layout string
	loc    *time.Location
}

// coerce applies the handler for ft to v.
func (c coercer) coerce(ft FieldType, v any) (any, error) {
	switch ft {
	case TypeInt:
		return toInt(v)
	case TypeTimestamp:
		return c.toTimestamp(v)
	default:
		return toString(v), nil
	}
}

// Coerce converts v to ft using the default timestamp layout in UTC.
func Coerce(ft FieldType, v any) (any, error) {
	return coercer{layout: DefaultTimeLayout, loc: time.UTC}.coerce(ft, v)
}

// toInt accepts numeric-looking values and truncates them toward zero.
func toInt(v any) (int64, error) {
	switch val := v.(type) {
	case string:
		return parseNumeric(val)
	case []byte:
		return parseNumeric(string(val))
	case json.Number:
		return parseNumeric(val.String())
	case bool, nil:
		return 0, errNotNumeric
	}

	rv := reflect.ValueOf(v)
	switch k := rv.Kind(); {
	case isIntKind(k):
		return rv.Int(), nil
	case isUintKind(k):
		if rv.Uint() > math.MaxInt64 {
			return 0, errOutOfRange
		}
		return int64(rv.Uint()), nil
	case isFloatKind(k):
		return truncate(rv.Float())
	case k == reflect.String:
		return parseNumeric(rv.String())
	}

	return 0, errNotNumeric
}

// parseNumeric parses integer or decimal text and truncates toward zero.
func parseNumeric(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "_") {
		return 0, errNotNumeric
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errNotNumeric
	}
	return truncate(f)
}

func truncate(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumeric
	}
	t := math.Trunc(f)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, errOutOfRange
	}
	return int64(t), nil
}

// toTimestamp accepts layout-formatted text and time values. A *time.Time is
// copied so the entity never shares it with the source.
func (c coercer) toTimestamp(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case *time.Time:
		if val == nil {
			return time.Time{}, errNotTimestamp
		}
		return *val, nil
	case string:
		t, err := time.ParseInLocation(c.layout, val, c.loc)
		if err != nil {
			return time.Time{}, err
		}
		return t, nil
	}
	return time.Time{}, errNotTimestamp
}

// toString returns the natural string form of v.
func toString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprint(v)
}
