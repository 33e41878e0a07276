package hydrate

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrReflection indicates an entity type name could not be resolved to a registered type.
	ErrReflection = errors.New("reflection failed")

	// ErrInvalidMapping indicates a mapping entry is structurally malformed.
	ErrInvalidMapping = errors.New("invalid mapping")

	// ErrTypeMismatch indicates a source value could not be coerced to the declared type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsupportedValueType indicates mapping inference met a value it cannot classify.
	ErrUnsupportedValueType = errors.New("unsupported value type")

	// ErrUnsupportedSource indicates a hydration source is neither a record nor a struct.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrDecode indicates a codec failed to decode an encoded record.
	ErrDecode = errors.New("decode failed")
)

// ReflectionError reports a type that could not be resolved or registered.
type ReflectionError struct {
	Err        error  // Underlying sentinel error (ErrReflection)
	EntityType string // Requested entity type name
	Reason     string // Why resolution failed
}

func (e *ReflectionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: entity type %q %s", e.Err.Error(), e.EntityType, e.Reason)
	}
	return fmt.Sprintf("%s: entity type %q", e.Err.Error(), e.EntityType)
}

func (e *ReflectionError) Unwrap() error {
	return e.Err
}

// MappingError reports a malformed mapping entry.
type MappingError struct {
	Err        error  // Underlying sentinel error (ErrInvalidMapping)
	EntityType string // Entity being hydrated
	Source     string // Source key of the offending entry
	Position   int    // Position of the entry in the mapping
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%s: entry %d for %q has no target field when hydrating %s",
		e.Err.Error(), e.Position, e.Source, e.EntityType)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// MismatchError reports a value that could not be coerced or assigned to a field.
type MismatchError struct {
	Err        error  // Underlying sentinel error (ErrTypeMismatch)
	EntityType string // Entity being hydrated
	Field      string // Target field name
	Source     string // Source key the value came from
	Want       string // Declared semantic type
	Actual     string // Runtime type of the offending value
	Cause      error  // Original parse or assignment error, if any
}

func (e *MismatchError) Error() string {
	msg := fmt.Sprintf("%s: field %s of %s expects %s from %q, got %s",
		e.Err.Error(), e.Field, e.EntityType, e.Want, e.Source, e.Actual)
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *MismatchError) Unwrap() error {
	return e.Err
}

// UnsupportedValueError reports a record value mapping inference cannot classify.
type UnsupportedValueError struct {
	Err        error  // Underlying sentinel error (ErrUnsupportedValueType)
	EntityType string // Entity being hydrated
	Key        string // Offending record key
	Actual     string // Runtime type of the offending value
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("%s: key %q of type %s when hydrating %s",
		e.Err.Error(), e.Key, e.Actual, e.EntityType)
}

func (e *UnsupportedValueError) Unwrap() error {
	return e.Err
}

// DecodeError represents a codec decode failure.
type DecodeError struct {
	Err         error  // Underlying sentinel error (ErrDecode)
	ContentType string // Codec content type
	Cause       error  // Original error from the codec
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Err.Error(), e.ContentType, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), e.ContentType)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// newReflectionError creates a ReflectionError for an unresolvable type.
func newReflectionError(entityType, reason string) error {
	return &ReflectionError{
		Err:        ErrReflection,
		EntityType: entityType,
		Reason:     reason,
	}
}

// newMismatchError creates a MismatchError for a failed coercion or assignment.
func newMismatchError(entityType string, entry Entry, value any, cause error) error {
	return &MismatchError{
		Err:        ErrTypeMismatch,
		EntityType: entityType,
		Field:      entry.Field,
		Source:     entry.Source,
		Want:       entry.Type.String(),
		Actual:     typeOf(value),
		Cause:      cause,
	}
}

// typeOf renders the runtime type of v for error messages.
func typeOf(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
