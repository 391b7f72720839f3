package modeltree

import (
	"context"
	"fmt"
	"sort"
)

// UnknownPolicy controls how keys absent from the declaration are handled
// during construction.
type UnknownPolicy int

const (
	UnknownStrict UnknownPolicy = iota // Reject unknown keys with an error.
	UnknownIgnore                      // Drop unknown keys (tolerant shape).
)

// FieldDef declares one field of a record type.
type FieldDef struct {
	Name     string
	Spec     TypeSpec
	Required bool
	// Default produces a raw value for an absent optional field. The value
	// runs through Spec like any present value.
	Default func(ctx context.Context) (any, error)
}

// Check is a record-local semantic rule. It runs during the validation pass,
// never at construction time.
type Check struct {
	Name string
	Fn   func(ctx context.Context, r *Record) error
}

// ModelType is a declarative record type: an ordered field table resolved
// once at definition time, an unknown-key policy, and validation-pass checks.
// A ModelType is immutable after NewModelType returns and safe for concurrent
// use.
type ModelType struct {
	name    string
	fields  []FieldDef
	index   map[string]int
	unknown UnknownPolicy
	checks  []Check
}

// ModelOption configures a ModelType at definition time.
type ModelOption func(*ModelType)

// WithUnknown sets the unknown-key policy (default UnknownStrict).
func WithUnknown(p UnknownPolicy) ModelOption {
	return func(t *ModelType) { t.unknown = p }
}

// WithChecks appends validation-pass checks.
func WithChecks(checks ...Check) ModelOption {
	return func(t *ModelType) { t.checks = append(t.checks, checks...) }
}

// NewModelType resolves a record type from its field declarations. Duplicate
// or empty field names and unresolved specs are definition-time errors.
func NewModelType(name string, fields []FieldDef, opts ...ModelOption) (*ModelType, error) {
	if name == "" {
		return nil, NewDefinitionError("model", "empty type name")
	}
	t := &ModelType{
		name:   name,
		fields: append([]FieldDef(nil), fields...),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range t.fields {
		if f.Name == "" {
			return nil, NewDefinitionError(name, "field %d has an empty name", i)
		}
		if _, dup := t.index[f.Name]; dup {
			return nil, NewDefinitionError(name, "duplicate field %q", f.Name)
		}
		if err := f.Spec.verify(); err != nil {
			return nil, NewDefinitionError(name, "field %q: %v", f.Name, err)
		}
		t.index[f.Name] = i
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// MustModelType is like NewModelType but panics on definition errors.
func MustModelType(name string, fields []FieldDef, opts ...ModelOption) *ModelType {
	t, err := NewModelType(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the declared type name.
func (t *ModelType) Name() string { return t.name }

// Fields returns the field table in declaration order. The caller must not
// mutate it.
func (t *ModelType) Fields() []FieldDef { return t.fields }

// FieldSpec returns the declared spec for a field name.
func (t *ModelType) FieldSpec(name string) (TypeSpec, bool) {
	i, ok := t.index[name]
	if !ok {
		return TypeSpec{}, false
	}
	return t.fields[i].Spec, true
}

// Construct builds a Record from a JSON-shaped mapping. Construction is
// fail-fast: the first shape or type mismatch aborts the whole call and no
// partial tree is returned.
func (t *ModelType) Construct(ctx context.Context, data any) (*Record, error) {
	return t.constructAt(ctx, data, Path{})
}

func (t *ModelType) constructAt(ctx context.Context, data any, path Path) (*Record, error) {
	m, ok := data.(map[string]any)
	if !ok {
		return nil, invalidType(path, "expected an object", data)
	}
	r := &Record{typ: t, values: make([]Value, len(t.fields))}
	for i, f := range t.fields {
		raw, exists := m[f.Name]
		if !exists {
			if f.Default != nil {
				dv, err := f.Default(ctx)
				if err != nil {
					return nil, NewConstruction(CodeParseError, path.Field(f.Name), err.Error())
				}
				raw = dv
			} else if f.Required {
				return nil, NewConstruction(CodeRequired, path.Field(f.Name), "")
			} else {
				continue
			}
		}
		v, err := f.Spec.construct(ctx, raw, path.Field(f.Name))
		if err != nil {
			return nil, err
		}
		r.values[i] = v
	}
	if t.unknown == UnknownStrict {
		var unknown []string
		for k := range m {
			if _, known := t.index[k]; !known {
				unknown = append(unknown, k)
			}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			e := NewConstruction(CodeUnknownKey, path.Field(unknown[0]), "")
			e.Hint = fmt.Sprintf("not declared on %s", t.name)
			return nil, e
		}
	}
	return r, nil
}

// Record is a constructed instance of a ModelType. Its shape is fixed by the
// declaration; field values are replaced only through Set.
type Record struct {
	typ    *ModelType
	values []Value
}

// Type returns the record's declared type.
func (r *Record) Type() *ModelType { return r.typ }

func (r *Record) NodeKind() NodeKind { return KindRecord }

// Node returns the typed node stored for a field, or nil when the optional
// field is absent or the name is not declared.
func (r *Record) Node(name string) Value {
	i, ok := r.typ.index[name]
	if !ok {
		return nil
	}
	return r.values[i]
}

// Get returns the field's value with primitives unwrapped to their scalars.
// Wrapper, record, union and list fields return the node itself.
func (r *Record) Get(name string) any {
	v := r.Node(name)
	if p, ok := v.(*Primitive); ok {
		return p.Value()
	}
	return v
}

// GetString returns a string field's scalar ("" when absent or not a string).
func (r *Record) GetString(name string) string {
	s, _ := r.Get(name).(string)
	return s
}

// GetInt returns an int field's scalar (0 when absent or not an int).
func (r *Record) GetInt(name string) int64 {
	n, _ := r.Get(name).(int64)
	return n
}

// GetFloat returns a float field's scalar (0 when absent or not a float).
func (r *Record) GetFloat(name string) float64 {
	f, _ := r.Get(name).(float64)
	return f
}

// GetBool returns a bool field's scalar (false when absent or not a bool).
func (r *Record) GetBool(name string) bool {
	b, _ := r.Get(name).(bool)
	return b
}

// GetRecord returns a nested record field (nil when absent).
func (r *Record) GetRecord(name string) *Record {
	n, _ := r.Node(name).(*Record)
	return n
}

// GetWrapper returns a wrapper field (nil when absent).
func (r *Record) GetWrapper(name string) *Wrapper {
	n, _ := r.Node(name).(*Wrapper)
	return n
}

// GetUnion returns a union field (nil when absent).
func (r *Record) GetUnion(name string) *Union {
	n, _ := r.Node(name).(*Union)
	return n
}

// GetList returns a list field (nil when absent).
func (r *Record) GetList(name string) *List {
	n, _ := r.Node(name).(*List)
	return n
}

// Set replaces one field value, constructing it through the field's declared
// spec so the replacement obeys the same rules as initial construction.
func (r *Record) Set(ctx context.Context, name string, raw any) error {
	i, ok := r.typ.index[name]
	if !ok {
		e := NewConstruction(CodeUnknownKey, Path{}.Field(name), "")
		e.Hint = fmt.Sprintf("not declared on %s", r.typ.name)
		return e
	}
	v, err := r.typ.fields[i].Spec.construct(ctx, raw, Path{}.Field(name))
	if err != nil {
		return err
	}
	r.values[i] = v
	return nil
}

// Validate runs the deferred validation pass: record-local checks first, then
// every child in declaration order. The first failure aborts with a
// Validation error carrying the path to the offending node. Validate never
// mutates the tree.
func (r *Record) Validate(ctx context.Context) error {
	return r.validate(ctx, Path{})
}

func (r *Record) validate(ctx context.Context, path Path) error {
	for _, c := range r.typ.checks {
		if err := c.Fn(ctx, r); err != nil {
			if e, ok := AsError(err); ok {
				if len(e.Path) == 0 {
					e.Path = path
				}
				return e
			}
			ve := NewValidation(CodeBusinessRule, path, err.Error())
			ve.Hint = c.Name
			ve.Cause = err
			return ve
		}
	}
	for i, f := range r.typ.fields {
		if r.values[i] == nil {
			continue
		}
		if err := r.values[i].validate(ctx, path.Field(f.Name)); err != nil {
			return err
		}
	}
	return nil
}

// Serialize emits a mapping of each field's serialized form. Absent optional
// fields are omitted, so a round-trip reproduces the original document shape.
func (r *Record) Serialize() any {
	out := make(map[string]any, len(r.typ.fields))
	for i, f := range r.typ.fields {
		if r.values[i] == nil {
			continue
		}
		out[f.Name] = r.values[i].Serialize()
	}
	return out
}
