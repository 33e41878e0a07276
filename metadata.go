package hydrate

import (
	"context"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/zoobzio/sentinel"
)

// aliasTag lets an exported field answer to a mapping name other than its Go name.
const aliasTag = "hydrate"

func init() {
	sentinel.Tag(aliasTag)
}

// FieldDescriptor is one assignable field of an entity type.
// Descriptors are immutable once built.
type FieldDescriptor struct {
	Name     string       // Go field name
	Alias    string       // Value of the hydrate tag, if any
	Index    []int        // reflect.Value.FieldByIndex access path
	Type     reflect.Type // Declared Go type
	Exported bool         // False for fields set through their address
}

// Metadata is the cached field set of a registered entity type.
type Metadata struct {
	EntityType  string
	TypeName    string
	PackageName string
	Fields      map[string]*FieldDescriptor // Keyed by Go name and alias
	Order       []string                    // Go names in declaration order

	rtype reflect.Type
}

// Field returns the descriptor answering to name.
func (m *Metadata) Field(name string) (*FieldDescriptor, bool) {
	fd, ok := m.Fields[name]
	return fd, ok
}

// metadataBuilt reports a freshly cached entity type.
var metadataBuilt = emitMetadataBuilt

// Metadata returns the cached field set for an entity type, building it on
// first use. Entries are never rebuilt.
func (h *Hydrator) Metadata(entityType string) (*Metadata, error) {
	return h.metadata(context.Background(), entityType)
}

func (h *Hydrator) metadata(ctx context.Context, entityType string) (*Metadata, error) {
	// Fast path: read-lock cache check
	h.metaMu.RLock()
	if cached, ok := h.meta[entityType]; ok {
		h.metaMu.RUnlock()
		return cached, nil
	}
	h.metaMu.RUnlock()

	te, ok := h.lookupType(entityType)
	if !ok {
		return nil, newReflectionError(entityType, "is not registered")
	}

	// Slow path: build and cache with write-lock
	h.metaMu.Lock()
	defer h.metaMu.Unlock()

	// Double-check pattern
	if cached, ok := h.meta[entityType]; ok {
		return cached, nil
	}

	md := buildMetadata(entityType, te)
	h.meta[entityType] = md

	metadataBuilt(ctx, entityType, len(md.Order))
	return md, nil
}

// buildMetadata enumerates every declared field of a registered type.
// Unexported fields are included; aliases come from the sentinel scan,
// which only covers exported fields.
func buildMetadata(entityType string, te typeEntry) *Metadata {
	scanned := te.scan()

	aliases := make(map[string]string, len(scanned.Fields))
	for _, field := range scanned.Fields {
		if alias, ok := field.Tags[aliasTag]; ok && alias != "" && alias != "-" {
			aliases[field.Name] = alias
		}
	}

	rt := te.rtype
	md := &Metadata{
		EntityType:  entityType,
		TypeName:    scanned.TypeName,
		PackageName: scanned.PackageName,
		Fields:      make(map[string]*FieldDescriptor, rt.NumField()),
		Order:       make([]string, 0, rt.NumField()),
		rtype:       rt,
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.Name == "_" {
			continue
		}

		fd := &FieldDescriptor{
			Name:     sf.Name,
			Alias:    aliases[sf.Name],
			Index:    sf.Index,
			Type:     sf.Type,
			Exported: sf.IsExported(),
		}

		md.Fields[sf.Name] = fd
		md.Order = append(md.Order, sf.Name)
	}

	// Aliases never shadow a real field name
	for _, name := range md.Order {
		fd := md.Fields[name]
		if fd.Alias == "" {
			continue
		}
		if _, taken := md.Fields[fd.Alias]; !taken {
			md.Fields[fd.Alias] = fd
		}
	}

	return md
}

// newInstance returns a pointer to a zero value of the entity type.
func (m *Metadata) newInstance() reflect.Value {
	return reflect.New(m.rtype)
}

// target returns the field of inst, made settable regardless of export status.
// inst must be addressable.
func (fd *FieldDescriptor) target(inst reflect.Value) reflect.Value {
	f := inst.FieldByIndex(fd.Index)
	if f.CanSet() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}

// Set assigns value to the field of inst. Integers are narrowed with an
// overflow check; values are wrapped when the field is a pointer to their type.
func (fd *FieldDescriptor) Set(inst reflect.Value, value any) error {
	f := fd.target(inst)
	rv := reflect.ValueOf(value)

	if !rv.IsValid() {
		f.Set(reflect.Zero(fd.Type))
		return nil
	}

	rt := rv.Type()
	switch {
	case rt.AssignableTo(fd.Type):
		f.Set(rv)
	case isIntKind(rt.Kind()) && isIntKind(fd.Type.Kind()):
		if f.OverflowInt(rv.Int()) {
			return fmt.Errorf("value %d overflows %s", rv.Int(), fd.Type)
		}
		f.SetInt(rv.Int())
	case isIntKind(rt.Kind()) && isUintKind(fd.Type.Kind()):
		if rv.Int() < 0 || f.OverflowUint(uint64(rv.Int())) {
			return fmt.Errorf("value %d overflows %s", rv.Int(), fd.Type)
		}
		f.SetUint(uint64(rv.Int()))
	case isIntKind(rt.Kind()) && isFloatKind(fd.Type.Kind()):
		f.SetFloat(float64(rv.Int()))
	case fd.Type.Kind() == reflect.Pointer && rt.AssignableTo(fd.Type.Elem()):
		p := reflect.New(fd.Type.Elem())
		p.Elem().Set(rv)
		f.Set(p)
	case rt.Kind() == fd.Type.Kind() && rt.ConvertibleTo(fd.Type):
		f.Set(rv.Convert(fd.Type))
	default:
		return fmt.Errorf("cannot assign %s to field of type %s", rt, fd.Type)
	}

	return nil
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
