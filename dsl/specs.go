package dsl

import (
	modeltree "github.com/modeltree/modeltree"
)

// String declares a string field.
func String() modeltree.TypeSpec { return modeltree.PrimitiveOf(modeltree.PrimString) }

// Int declares an integer field.
func Int() modeltree.TypeSpec { return modeltree.PrimitiveOf(modeltree.PrimInt) }

// Float declares a float field (integral input is widened).
func Float() modeltree.TypeSpec { return modeltree.PrimitiveOf(modeltree.PrimFloat) }

// Bool declares a bool field.
func Bool() modeltree.TypeSpec { return modeltree.PrimitiveOf(modeltree.PrimBool) }

// Any declares a field accepting any scalar.
func Any() modeltree.TypeSpec { return modeltree.PrimitiveOf(modeltree.PrimAny) }

// ListOf declares a homogeneous list field.
func ListOf(elem modeltree.TypeSpec) modeltree.TypeSpec { return modeltree.ListOf(elem) }

// Ref declares a nested record field.
func Ref(t *modeltree.ModelType) modeltree.TypeSpec { return modeltree.RecordOf(t) }

// WrapperOf declares a scalar-wrapper field.
func WrapperOf(t *modeltree.WrapperType) modeltree.TypeSpec { return modeltree.WrapperOf(t) }

// OneOf declares a discriminated-union field. The union handle may still be
// collecting variants; only construction requires it frozen, so mutually
// recursive declarations work.
func OneOf(u *modeltree.UnionType) modeltree.TypeSpec { return modeltree.UnionOf(u) }

// Literal declares a field restricted to the given scalar values. Non-scalar
// values are a definition mistake and panic, like MustBuild would.
func Literal(values ...any) modeltree.TypeSpec {
	s, err := modeltree.LiteralOf(values...)
	if err != nil {
		panic(err)
	}
	return s
}
