package hydrate

// FieldSetter lets an entity bypass reflection-based assignment.
// When the entity pointer implements this interface, the Hydrator calls
// SetField for every coerced value instead of writing the field itself.
//
// The interface is designed for codegen: a generator can emit a switch over
// field names, including unexported ones, with no reflection at runtime.
// Field presence is still decided by the entity's metadata, so SetField is
// only called with names that exist on the type.
type FieldSetter interface {
	// SetField assigns value to the named field. name is the Go field
	// name, never an alias. value is an int64, string or time.Time
	// according to the declared field type.
	SetField(name string, value any) error
}
