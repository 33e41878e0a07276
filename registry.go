package hydrate

import (
	"reflect"

	"github.com/zoobzio/sentinel"
)

// typeEntry is a registered entity type.
type typeEntry struct {
	rtype reflect.Type
	scan  func() sentinel.Metadata
}

// Register makes T available to h under name, or under the struct's type
// name when name is omitted. Registering the same type twice is a no-op;
// registering a different type under a taken name fails with ErrReflection.
func Register[T any](h *Hydrator, name ...string) (string, error) {
	rt := reflect.TypeFor[T]()
	typeName := rt.Name()
	if len(name) > 0 && name[0] != "" {
		typeName = name[0]
	}

	if rt.Kind() != reflect.Struct {
		return "", newReflectionError(typeName, "is not a struct")
	}
	if typeName == "" {
		return "", newReflectionError(rt.String(), "has no name")
	}

	// Fast path: read-lock check
	h.typesMu.RLock()
	existing, ok := h.types[typeName]
	h.typesMu.RUnlock()
	if ok {
		if existing.rtype != rt {
			return "", newReflectionError(typeName, "is already registered to "+existing.rtype.String())
		}
		return typeName, nil
	}

	h.typesMu.Lock()
	defer h.typesMu.Unlock()

	// Double-check pattern
	if existing, ok := h.types[typeName]; ok {
		if existing.rtype != rt {
			return "", newReflectionError(typeName, "is already registered to "+existing.rtype.String())
		}
		return typeName, nil
	}

	h.types[typeName] = typeEntry{
		rtype: rt,
		scan:  sentinel.Scan[T],
	}
	if _, ok := h.names[rt]; !ok {
		h.names[rt] = typeName
	}
	return typeName, nil
}

// Resolve returns the name T is registered under with h, registering it on
// first use. A new type takes its type name, or its package-qualified name
// when another type already holds the plain one.
func Resolve[T any](h *Hydrator) (string, error) {
	rt := reflect.TypeFor[T]()

	h.typesMu.RLock()
	name, ok := h.names[rt]
	h.typesMu.RUnlock()
	if ok {
		return name, nil
	}

	name, err := Register[T](h)
	if err != nil && rt.Kind() == reflect.Struct && rt.Name() != "" {
		return Register[T](h, qualifiedName(rt))
	}
	return name, err
}

func qualifiedName(rt reflect.Type) string {
	if rt.PkgPath() == "" {
		return rt.Name()
	}
	return rt.PkgPath() + "." + rt.Name()
}

// lookupType returns the registered entry for an entity type name.
func (h *Hydrator) lookupType(entityType string) (typeEntry, bool) {
	h.typesMu.RLock()
	defer h.typesMu.RUnlock()
	te, ok := h.types[entityType]
	return te, ok
}

// Registered returns true if an entity type name is known to h.
func (h *Hydrator) Registered(entityType string) bool {
	_, ok := h.lookupType(entityType)
	return ok
}
