package hydrate

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

// MetaUser has exported, aliased and unexported fields.
type MetaUser struct {
	ID      int64
	Name    string    `hydrate:"full_name"`
	Created time.Time `hydrate:"created_at"`
	secret  string
}

// ShadowUser has an alias that collides with a real field name.
type ShadowUser struct {
	ID   int64  `hydrate:"Name"`
	Name string
}

func TestMetadata_Fields(t *testing.T) {
	h := New()
	if _, err := Register[MetaUser](h); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	md, err := h.Metadata("MetaUser")
	if err != nil {
		t.Fatalf("Metadata() error: %v", err)
	}

	wantOrder := []string{"ID", "Name", "Created", "secret"}
	if !reflect.DeepEqual(md.Order, wantOrder) {
		t.Errorf("Order = %v, want %v", md.Order, wantOrder)
	}

	secret, ok := md.Field("secret")
	if !ok {
		t.Fatal("unexported field should be present")
	}
	if secret.Exported {
		t.Error("secret should not be marked exported")
	}

	byAlias, ok := md.Field("full_name")
	if !ok {
		t.Fatal("alias full_name should resolve")
	}
	if byAlias.Name != "Name" {
		t.Errorf("alias resolved to %s, want Name", byAlias.Name)
	}
	if byAlias.Alias != "full_name" {
		t.Errorf("Alias = %q, want full_name", byAlias.Alias)
	}

	if md.TypeName != "MetaUser" {
		t.Errorf("TypeName = %q, want MetaUser", md.TypeName)
	}
}

func TestMetadata_Cached(t *testing.T) {
	h := New()
	_, _ = Register[MetaUser](h)

	first, err := h.Metadata("MetaUser")
	if err != nil {
		t.Fatalf("Metadata() error: %v", err)
	}
	second, err := h.Metadata("MetaUser")
	if err != nil {
		t.Fatalf("Metadata() error: %v", err)
	}

	if first != second {
		t.Error("Metadata() should return the cached entry")
	}
	if !reflect.DeepEqual(first.Order, second.Order) {
		t.Error("cached field sets should be identical")
	}
}

func TestMetadata_NotShared(t *testing.T) {
	h1, h2 := New(), New()
	_, _ = Register[MetaUser](h1)
	_, _ = Register[MetaUser](h2)

	m1, _ := h1.Metadata("MetaUser")
	m2, _ := h2.Metadata("MetaUser")
	if m1 == m2 {
		t.Error("hydrators should not share cache entries")
	}
}

func TestMetadata_Unknown(t *testing.T) {
	h := New()

	_, err := h.Metadata("Nope")
	if !errors.Is(err, ErrReflection) {
		t.Errorf("Metadata() error = %v, want ErrReflection", err)
	}
}

func TestMetadata_AliasNeverShadows(t *testing.T) {
	h := New()
	_, _ = Register[ShadowUser](h)

	md, err := h.Metadata("ShadowUser")
	if err != nil {
		t.Fatalf("Metadata() error: %v", err)
	}

	fd, _ := md.Field("Name")
	if fd.Name != "Name" {
		t.Errorf("Name resolved to %s, want the Name field", fd.Name)
	}
}

func TestMetadata_Concurrent(t *testing.T) {
	h := New()
	_, _ = Register[MetaUser](h)

	const workers = 16
	results := make([]*Metadata, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			md, err := h.Metadata("MetaUser")
			if err != nil {
				t.Errorf("Metadata() error: %v", err)
				return
			}
			results[i] = md
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent first resolution should yield a single entry")
		}
	}
}

func TestFieldDescriptor_Set(t *testing.T) {
	type target struct {
		Int8    int8
		Uint    uint
		Float   float64
		Ptr     *string
		TimePtr *time.Time
		Any     any
		Label   label
		hidden  int64
	}

	rt := reflect.TypeFor[target]()
	field := func(name string) *FieldDescriptor {
		sf, _ := rt.FieldByName(name)
		return &FieldDescriptor{Name: name, Index: sf.Index, Type: sf.Type, Exported: sf.IsExported()}
	}

	ptr := reflect.New(rt)
	inst := ptr.Elem()
	when := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)

	steps := []struct {
		name  string
		value any
	}{
		{"Int8", int64(12)},
		{"Uint", int64(7)},
		{"Float", int64(3)},
		{"Ptr", "text"},
		{"TimePtr", when},
		{"Any", "anything"},
		{"Label", "tagged"},
		{"hidden", int64(99)},
	}
	for _, s := range steps {
		if err := field(s.name).Set(inst, s.value); err != nil {
			t.Fatalf("Set(%s) error: %v", s.name, err)
		}
	}

	got := ptr.Interface().(*target)
	if got.Int8 != 12 || got.Uint != 7 || got.Float != 3 {
		t.Errorf("numeric fields = %d %d %v", got.Int8, got.Uint, got.Float)
	}
	if got.Ptr == nil || *got.Ptr != "text" {
		t.Errorf("Ptr = %v, want pointer to text", got.Ptr)
	}
	if got.TimePtr == nil || !got.TimePtr.Equal(when) {
		t.Errorf("TimePtr = %v, want %v", got.TimePtr, when)
	}
	if got.Any != "anything" {
		t.Errorf("Any = %v", got.Any)
	}
	if got.Label != "tagged" {
		t.Errorf("Label = %q", got.Label)
	}
	if got.hidden != 99 {
		t.Errorf("hidden = %d, want 99", got.hidden)
	}
}

type label string

func TestFieldDescriptor_SetErrors(t *testing.T) {
	type target struct {
		Small int8
		Count uint8
		Name  string
		When  time.Time
	}

	rt := reflect.TypeFor[target]()
	inst := reflect.New(rt).Elem()
	field := func(name string) *FieldDescriptor {
		sf, _ := rt.FieldByName(name)
		return &FieldDescriptor{Name: name, Index: sf.Index, Type: sf.Type, Exported: true}
	}

	tests := []struct {
		field string
		value any
	}{
		{"Small", int64(1000)},
		{"Count", int64(-1)},
		{"Name", int64(65)},
		{"When", "2023-05-01"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if err := field(tt.field).Set(inst, tt.value); err == nil {
				t.Errorf("Set(%s, %v) should fail", tt.field, tt.value)
			}
		})
	}
}

func TestFieldDescriptor_SetNil(t *testing.T) {
	type target struct{ Name *string }

	rt := reflect.TypeFor[target]()
	name := "set"
	v := reflect.ValueOf(&target{Name: &name}).Elem()
	sf, _ := rt.FieldByName("Name")
	fd := &FieldDescriptor{Name: "Name", Index: sf.Index, Type: sf.Type, Exported: true}

	if err := fd.Set(v, nil); err != nil {
		t.Fatalf("Set(nil) error: %v", err)
	}
	if v.Field(0).Interface().(*string) != nil {
		t.Error("Set(nil) should zero the field")
	}
}

type traceKey struct{}

func TestHydrateInto_MetadataEventCarriesContext(t *testing.T) {
	var seen []any
	orig := metadataBuilt
	metadataBuilt = func(ctx context.Context, entityType string, fieldCount int) {
		seen = append(seen, ctx.Value(traceKey{}))
		orig(ctx, entityType, fieldCount)
	}
	t.Cleanup(func() { metadataBuilt = orig })

	h := New()
	if _, err := Register[MetaUser](h); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	ctx := context.WithValue(context.Background(), traceKey{}, "req-1")
	if _, err := h.HydrateInto(ctx, "MetaUser", Bag{"ID": 1}, Mapping{Field("ID", "ID", TypeInt)}); err != nil {
		t.Fatalf("HydrateInto() error: %v", err)
	}
	if _, err := h.HydrateInto(ctx, "MetaUser", Bag{"ID": 2}, Mapping{Field("ID", "ID", TypeInt)}); err != nil {
		t.Fatalf("HydrateInto() error: %v", err)
	}

	if len(seen) != 1 {
		t.Fatalf("metadata built %d times, want 1", len(seen))
	}
	if seen[0] != "req-1" {
		t.Errorf("metadata event context value = %v, want req-1", seen[0])
	}
}
