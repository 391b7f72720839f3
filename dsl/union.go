package dsl

import (
	modeltree "github.com/modeltree/modeltree"
)

// UnionBuilder assembles a discriminated union registry. The underlying
// handle is created up front so variant models can reference the union in
// their own field specs (mutually recursive declarations); Build freezes the
// registry.
type UnionBuilder struct {
	u   *modeltree.UnionType
	err error
}

// Union creates a union builder discriminated on the given field name.
func Union(name, discriminator string) *UnionBuilder {
	u, err := modeltree.NewUnionType(name, discriminator)
	return &UnionBuilder{u: u, err: err}
}

// Spec returns a TypeSpec referencing this union, usable in field
// declarations before the union is built.
func (b *UnionBuilder) Spec() modeltree.TypeSpec {
	if b.u == nil {
		return modeltree.TypeSpec{}
	}
	return modeltree.UnionOf(b.u)
}

// Variant registers a concrete record variant. The variant must declare the
// discriminator field as a single-value literal; a duplicate literal is a
// definition error surfaced from Build.
func (b *UnionBuilder) Variant(m *modeltree.ModelType) *UnionBuilder {
	if b.err != nil {
		return b
	}
	b.err = b.u.Register(m)
	return b
}

// Build freezes the registry and returns the immutable union type.
func (b *UnionBuilder) Build() (*modeltree.UnionType, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.u.Variants()) == 0 {
		return nil, modeltree.NewDefinitionError(b.u.Name(), "no variants registered")
	}
	return b.u.Freeze(), nil
}

// MustBuild is like Build but panics on definition errors.
func (b *UnionBuilder) MustBuild() *modeltree.UnionType {
	u, err := b.Build()
	if err != nil {
		panic(err)
	}
	return u
}
