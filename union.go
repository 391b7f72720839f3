package modeltree

import (
	"context"
	"fmt"
)

// UnionType is a discriminated union over record variants. Each variant is an
// ordinary ModelType that declares the discriminator field as a single-value
// literal; registration extracts that literal and keys the registry with it.
// Registration happens at definition time; Freeze seals the registry before
// any data is processed, after which concurrent construction needs no
// coordination.
type UnionType struct {
	name          string
	discriminator string
	variants      map[any]*ModelType
	order         []any
	frozen        bool
}

// NewUnionType creates an empty union registry for the given discriminator
// field name.
func NewUnionType(name, discriminator string) (*UnionType, error) {
	if name == "" {
		return nil, NewDefinitionError("union", "empty type name")
	}
	if discriminator == "" {
		return nil, NewDefinitionError(name, "empty discriminator field name")
	}
	return &UnionType{
		name:          name,
		discriminator: discriminator,
		variants:      map[any]*ModelType{},
	}, nil
}

// MustUnionType is like NewUnionType but panics on definition errors.
func MustUnionType(name, discriminator string) *UnionType {
	u, err := NewUnionType(name, discriminator)
	if err != nil {
		panic(err)
	}
	return u
}

// Name returns the declared type name.
func (u *UnionType) Name() string { return u.name }

// Discriminator returns the discriminator field name.
func (u *UnionType) Discriminator() string { return u.discriminator }

// Register adds a variant. The variant must declare the discriminator field
// as a one-value literal set; that literal becomes the registry key. A
// duplicate literal under the same base is a definition-time error.
func (u *UnionType) Register(variant *ModelType) error {
	if u.frozen {
		return NewDefinitionError(u.name, "register after freeze")
	}
	if variant == nil {
		return NewDefinitionError(u.name, "nil variant")
	}
	spec, ok := variant.FieldSpec(u.discriminator)
	if !ok {
		return NewDefinitionError(u.name, "variant %s does not declare discriminator %q", variant.Name(), u.discriminator)
	}
	tag, ok := spec.SingleLiteral()
	if !ok {
		return NewDefinitionError(u.name, "variant %s must declare %q as a single-value literal", variant.Name(), u.discriminator)
	}
	if prev, dup := u.variants[tag]; dup {
		return NewDefinitionError(u.name, "discriminator value %v claimed by both %s and %s", tag, prev.Name(), variant.Name())
	}
	u.variants[tag] = variant
	u.order = append(u.order, tag)
	return nil
}

// MustRegister is like Register but panics on definition errors.
func (u *UnionType) MustRegister(variant *ModelType) *UnionType {
	if err := u.Register(variant); err != nil {
		panic(err)
	}
	return u
}

// Freeze seals the registry. Construction from data requires a frozen union.
func (u *UnionType) Freeze() *UnionType {
	u.frozen = true
	return u
}

// Variants returns the registered discriminator values in registration order.
func (u *UnionType) Variants() []any { return u.order }

// Variant returns the variant registered for a discriminator value.
func (u *UnionType) Variant(tag any) (*ModelType, bool) {
	t, ok := u.variants[tag]
	return t, ok
}

// Construct resolves the variant from the payload's discriminator value and
// delegates full construction to it.
func (u *UnionType) Construct(ctx context.Context, data any) (*Union, error) {
	return u.constructAt(ctx, data, Path{})
}

func (u *UnionType) constructAt(ctx context.Context, data any, path Path) (*Union, error) {
	m, ok := data.(map[string]any)
	if !ok {
		return nil, invalidType(path, "expected an object", data)
	}
	raw, exists := m[u.discriminator]
	if !exists {
		return nil, NewConstruction(CodeDiscriminatorMissing, path.Field(u.discriminator), "")
	}
	tag, ok := canonScalar(raw)
	if !ok {
		return nil, invalidType(path.Field(u.discriminator), "expected a scalar discriminator", raw)
	}
	variant, ok := u.variants[tag]
	if !ok {
		e := NewConstruction(CodeDiscriminatorUnknown, path.Field(u.discriminator), "")
		e.Hint = fmt.Sprintf("unknown variant %v of %s", tag, u.name)
		return nil, e
	}
	rec, err := variant.constructAt(ctx, data, path)
	if err != nil {
		return nil, err
	}
	return &Union{typ: u, tag: tag, rec: rec}, nil
}

// Union owns the resolved variant record and remembers the discriminator
// value that selected it. Field access, validation and serialization forward
// to the variant transparently.
type Union struct {
	typ *UnionType
	tag any
	rec *Record
}

// Type returns the union base type.
func (n *Union) Type() *UnionType { return n.typ }

func (n *Union) NodeKind() NodeKind { return KindUnion }

// Tag returns the discriminator value that selected the variant.
func (n *Union) Tag() any { return n.tag }

// Variant returns the wrapped concrete record.
func (n *Union) Variant() *Record { return n.rec }

// Get forwards to the variant record.
func (n *Union) Get(name string) any { return n.rec.Get(name) }

// Node forwards to the variant record.
func (n *Union) Node(name string) Value { return n.rec.Node(name) }

// Validate forwards the deferred pass to the variant record.
func (n *Union) Validate(ctx context.Context) error { return n.rec.Validate(ctx) }

func (n *Union) validate(ctx context.Context, path Path) error {
	return n.rec.validate(ctx, path)
}

// Serialize forwards to the variant and re-emits the discriminator value, so
// the emitted mapping re-resolves to the same variant on reconstruction even
// when the variant declared the discriminator optional.
func (n *Union) Serialize() any {
	out := n.rec.Serialize().(map[string]any)
	if _, ok := out[n.typ.discriminator]; !ok {
		out[n.typ.discriminator] = n.tag
	}
	return out
}
