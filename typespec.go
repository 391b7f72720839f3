package modeltree

import (
	"context"
	"fmt"
)

// PrimKind enumerates the primitive kinds a field can declare.
type PrimKind int

const (
	PrimString PrimKind = iota
	PrimInt
	PrimFloat
	PrimBool
	// PrimAny accepts any scalar (number, string, bool, null). It exists for
	// fields whose value set spans several primitive kinds.
	PrimAny
)

func (k PrimKind) String() string {
	switch k {
	case PrimString:
		return "string"
	case PrimInt:
		return "int"
	case PrimFloat:
		return "float"
	case PrimBool:
		return "bool"
	case PrimAny:
		return "any scalar"
	}
	return "unknown"
}

type specKind int

const (
	specZero specKind = iota
	specPrimitive
	specRecord
	specWrapper
	specUnion
	specList
	specLiteral
)

// TypeSpec describes how a declared field builds its value from untyped data.
// It is a tagged variant over primitives, record/wrapper/union references,
// homogeneous lists and literal sets, resolved once at type-definition time.
type TypeSpec struct {
	kind     specKind
	prim     PrimKind
	model    *ModelType
	wrapper  *WrapperType
	union    *UnionType
	elem     *TypeSpec
	literals []any
}

// PrimitiveOf declares a bare primitive field.
func PrimitiveOf(k PrimKind) TypeSpec { return TypeSpec{kind: specPrimitive, prim: k} }

// RecordOf declares a nested record field.
func RecordOf(t *ModelType) TypeSpec { return TypeSpec{kind: specRecord, model: t} }

// WrapperOf declares a scalar-wrapper field.
func WrapperOf(t *WrapperType) TypeSpec { return TypeSpec{kind: specWrapper, wrapper: t} }

// UnionOf declares a discriminated-union field.
func UnionOf(u *UnionType) TypeSpec { return TypeSpec{kind: specUnion, union: u} }

// ListOf declares a homogeneous list field.
func ListOf(elem TypeSpec) TypeSpec { return TypeSpec{kind: specList, elem: &elem} }

// LiteralOf declares a field restricted to a fixed scalar value set. Values
// are canonicalized once here so JSON-decoded input compares equal to Go
// literals.
func LiteralOf(values ...any) (TypeSpec, error) {
	if len(values) == 0 {
		return TypeSpec{}, NewDefinitionError("literal", "empty literal set")
	}
	canon := make([]any, len(values))
	for i, v := range values {
		c, ok := canonScalar(v)
		if !ok {
			return TypeSpec{}, NewDefinitionError("literal", "non-scalar literal value %v (%T)", v, v)
		}
		canon[i] = c
	}
	return TypeSpec{kind: specLiteral, literals: canon}, nil
}

// IsZero reports whether the spec was never resolved. Builders reject zero
// specs at definition time.
func (s TypeSpec) IsZero() bool { return s.kind == specZero }

// SingleLiteral returns the literal value when the spec is a one-value
// literal set. Union registration uses it to extract the discriminator tag a
// variant declares.
func (s TypeSpec) SingleLiteral() (any, bool) {
	if s.kind == specLiteral && len(s.literals) == 1 {
		return s.literals[0], true
	}
	return nil, false
}

func (s TypeSpec) label() string {
	switch s.kind {
	case specPrimitive:
		return s.prim.String()
	case specRecord:
		return s.model.Name()
	case specWrapper:
		return s.wrapper.Name()
	case specUnion:
		return s.union.Name()
	case specList:
		return "list of " + s.elem.label()
	case specLiteral:
		return fmt.Sprintf("literal %v", s.literals)
	}
	return "unresolved"
}

// verify checks that all referenced types are present. Builders call it once
// per declared field; data parsing never re-checks.
func (s TypeSpec) verify() error {
	switch s.kind {
	case specZero:
		return NewDefinitionError("field", "unresolved type spec")
	case specRecord:
		if s.model == nil {
			return NewDefinitionError("field", "nil record reference")
		}
	case specWrapper:
		if s.wrapper == nil {
			return NewDefinitionError("field", "nil wrapper reference")
		}
	case specUnion:
		if s.union == nil {
			return NewDefinitionError("field", "nil union reference")
		}
	case specList:
		if s.elem == nil {
			return NewDefinitionError("field", "nil list element spec")
		}
		return s.elem.verify()
	}
	return nil
}

// construct builds a typed node from one untyped value according to the spec.
func (s TypeSpec) construct(ctx context.Context, raw any, path Path) (Value, error) {
	switch s.kind {
	case specPrimitive:
		v, err := s.constructPrimitive(raw, path)
		if err != nil {
			return nil, err
		}
		return &Primitive{val: v}, nil
	case specLiteral:
		c, ok := canonScalar(raw)
		if !ok {
			return nil, invalidType(path, "expected a scalar", raw)
		}
		for _, lit := range s.literals {
			if c == lit {
				return &Primitive{val: c}, nil
			}
		}
		e := NewConstruction(CodeInvalidEnum, path, "")
		e.Hint = fmt.Sprintf("got %v, allowed %v", c, s.literals)
		return nil, e
	case specRecord:
		return s.model.constructAt(ctx, raw, path)
	case specWrapper:
		return s.wrapper.constructAt(raw, path)
	case specUnion:
		return s.union.constructAt(ctx, raw, path)
	case specList:
		items, ok := raw.([]any)
		if !ok {
			return nil, invalidType(path, "expected a list", raw)
		}
		elems := make([]Value, len(items))
		for i, item := range items {
			e, err := s.elem.construct(ctx, item, path.Index(i))
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return &List{elems: elems}, nil
	}
	return nil, NewConstruction(CodeParseError, path, "unresolved type spec")
}

func (s TypeSpec) constructPrimitive(raw any, path Path) (any, error) {
	c, ok := canonScalar(raw)
	if !ok {
		return nil, invalidType(path, "expected "+s.prim.String(), raw)
	}
	switch s.prim {
	case PrimAny:
		return c, nil
	case PrimString:
		if v, ok := c.(string); ok {
			return v, nil
		}
	case PrimInt:
		if v, ok := c.(int64); ok {
			return v, nil
		}
	case PrimFloat:
		switch v := c.(type) {
		case int64:
			return float64(v), nil
		case float64:
			return v, nil
		}
	case PrimBool:
		if v, ok := c.(bool); ok {
			return v, nil
		}
	}
	return nil, invalidType(path, "expected "+s.prim.String(), raw)
}

func invalidType(path Path, hint string, got any) *Error {
	e := NewConstruction(CodeInvalidType, path, "")
	e.Hint = fmt.Sprintf("%s, got %T", hint, got)
	return e
}
