// Package hydrate populates typed entity structs from loosely typed records.
//
// The package is meant for data-access layers that read raw query results
// (maps of column name to value) or arbitrary source structs and need them
// materialized into domain types.
//
// # Mappings
//
// A Mapping is an ordered list of entries. Each entry names a source key,
// a target field and the semantic type the value is coerced to:
//
//	mapping := hydrate.Mapping{
//	    hydrate.Field("id", "ID", hydrate.TypeInt),
//	    hydrate.Shorthand("name", "Name"),
//	    hydrate.Field("created_at", "Created", hydrate.TypeTimestamp),
//	}
//
// Mappings can also be loaded from YAML with ParseMapping or built from a
// loose map with MappingFromMap.
//
// # Basic Usage
//
//	type User struct {
//	    ID      int64
//	    Name    string
//	    Created time.Time
//	}
//
//	h := hydrate.New()
//	user, err := hydrate.Hydrate[User](ctx, h, row, mapping)
//
//	// Mapping inferred from the record's values
//	user, err = hydrate.Simple[User](ctx, h, row)
//
// Name-based hydration works on types registered up front:
//
//	hydrate.Register[User](h, "user")
//	v, err := h.HydrateInto(ctx, "user", row, mapping) // v is *User
//
// # Coercion
//
// Coercion is a closed set:
//
//   - TypeInt: numeric values and numeric strings, truncated toward zero
//   - TypeTimestamp: "2006-01-02 15:04:05" strings, time.Time and *time.Time
//   - TypeString: the value's natural string form (the default)
//
// # Failure Policy
//
// A source key missing from the record, or a target field missing from the
// entity, is reported to the Logger and the entry is skipped. A malformed
// entry (ErrInvalidMapping), a value that fails coercion (ErrTypeMismatch),
// an unregistered type (ErrReflection) and, during inference, a value that
// is neither integer, string nor time (ErrUnsupportedValueType) abort the
// hydration.
//
// # Field Access
//
// Fields are set by reflection regardless of export status. Exported fields
// also answer to the name in their hydrate tag:
//
//	Created time.Time `hydrate:"created_at"`
//
// Types implementing FieldSetter receive values through SetField instead.
//
// # Codec Providers
//
// Encoded records can be decoded and hydrated in one step with DecodeInto
// and DecodeSimple. Codecs are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// Query results from pgx are handled by the pgxrows subpackage.
package hydrate
