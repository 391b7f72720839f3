package dsl

import (
	"context"

	modeltree "github.com/modeltree/modeltree"
)

// ModelBuilder assembles a record type declaration. Definition mistakes are
// collected and surfaced from Build.
type ModelBuilder struct {
	name    string
	fields  []modeltree.FieldDef
	unknown modeltree.UnknownPolicy
	checks  []modeltree.Check
	err     error
}

type fieldStep struct {
	b *ModelBuilder
	i int
}

// Model creates a new record builder with safe defaults (UnknownStrict).
func Model(name string) *ModelBuilder {
	return &ModelBuilder{name: name, unknown: modeltree.UnknownStrict}
}

// Field appends a field declaration in order.
func (b *ModelBuilder) Field(name string, spec modeltree.TypeSpec) *fieldStep {
	b.fields = append(b.fields, modeltree.FieldDef{Name: name, Spec: spec})
	return &fieldStep{b: b, i: len(b.fields) - 1}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *ModelBuilder {
	f.b.fields[f.i].Required = true
	return f.b
}

// Optional marks the field as optional (the default) and returns the builder.
func (f *fieldStep) Optional() *ModelBuilder {
	f.b.fields[f.i].Required = false
	return f.b
}

// Default sets a raw default for an absent optional field. The value runs
// through the field spec like any present value.
func (f *fieldStep) Default(v any) *ModelBuilder {
	f.b.fields[f.i].Default = func(context.Context) (any, error) { return v, nil }
	return f.b
}

func (f *fieldStep) Field(name string, spec modeltree.TypeSpec) *fieldStep {
	return f.b.Field(name, spec)
}
func (f *fieldStep) Require(names ...string) *ModelBuilder { return f.b.Require(names...) }
func (f *fieldStep) UnknownStrict() *ModelBuilder          { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownIgnore() *ModelBuilder          { return f.b.UnknownIgnore() }
func (f *fieldStep) Check(name string, fn func(context.Context, *modeltree.Record) error) *ModelBuilder {
	return f.b.Check(name, fn)
}
func (f *fieldStep) Build() (*modeltree.ModelType, error) { return f.b.Build() }
func (f *fieldStep) MustBuild() *modeltree.ModelType      { return f.b.MustBuild() }

// Require marks one or more declared fields as required.
func (b *ModelBuilder) Require(names ...string) *ModelBuilder {
	for _, n := range names {
		found := false
		for i := range b.fields {
			if b.fields[i].Name == n {
				b.fields[i].Required = true
				found = true
				break
			}
		}
		if !found && b.err == nil {
			b.err = modeltree.NewDefinitionError(b.name, "Require(%q) before Field(%q)", n, n)
		}
	}
	return b
}

// UnknownStrict rejects keys absent from the declaration.
func (b *ModelBuilder) UnknownStrict() *ModelBuilder {
	b.unknown = modeltree.UnknownStrict
	return b
}

// UnknownIgnore drops keys absent from the declaration.
func (b *ModelBuilder) UnknownIgnore() *ModelBuilder {
	b.unknown = modeltree.UnknownIgnore
	return b
}

// Check adds a named record-local rule for the validation pass.
func (b *ModelBuilder) Check(name string, fn func(context.Context, *modeltree.Record) error) *ModelBuilder {
	if fn == nil {
		return b
	}
	b.checks = append(b.checks, modeltree.Check{Name: name, Fn: fn})
	return b
}

// Build resolves the declaration into an immutable ModelType.
func (b *ModelBuilder) Build() (*modeltree.ModelType, error) {
	if b.err != nil {
		return nil, b.err
	}
	return modeltree.NewModelType(b.name, b.fields,
		modeltree.WithUnknown(b.unknown),
		modeltree.WithChecks(b.checks...),
	)
}

// MustBuild is like Build but panics on definition errors.
func (b *ModelBuilder) MustBuild() *modeltree.ModelType {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
