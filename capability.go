package hydrate

// FieldType is the semantic type a mapping entry declares for its target field.
// The set is closed: every variant has exactly one coercion handler.
type FieldType uint8

const (
	// TypeString converts a value via its natural string form. It is the zero
	// value and the fallback for unrecognized tags.
	TypeString FieldType = iota

	// TypeInt accepts numeric-looking values and truncates them toward zero.
	TypeInt

	// TypeTimestamp accepts layout-formatted strings and time values.
	TypeTimestamp
)

// fieldTypeTags maps the textual tags used in mapping files to field types.
var fieldTypeTags = map[string]FieldType{
	"string":    TypeString,
	"int":       TypeInt,
	"timestamp": TypeTimestamp,
}

// ParseFieldType returns the field type for a tag. Unknown or empty tags
// fall back to TypeString.
func ParseFieldType(tag string) FieldType {
	if ft, ok := fieldTypeTags[tag]; ok {
		return ft
	}
	return TypeString
}

// IsValidFieldTypeTag returns true if the tag names a known field type.
func IsValidFieldTypeTag(tag string) bool {
	_, ok := fieldTypeTags[tag]
	return ok
}

// String returns the tag for the field type.
func (ft FieldType) String() string {
	switch ft {
	case TypeInt:
		return "int"
	case TypeTimestamp:
		return "timestamp"
	default:
		return "string"
	}
}
