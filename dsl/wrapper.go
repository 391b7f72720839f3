package dsl

import (
	"fmt"

	modeltree "github.com/modeltree/modeltree"
)

// WrapperBuilder assembles a scalar-wrapper type: one primitive kind plus
// construction-time checks.
type WrapperBuilder struct {
	name   string
	prim   modeltree.PrimKind
	checks []func(v any) error
}

// Wrapper creates a new wrapper builder over the given primitive kind.
func Wrapper(name string, prim modeltree.PrimKind) *WrapperBuilder {
	return &WrapperBuilder{name: name, prim: prim}
}

// Check appends a predicate over the canonicalized raw value. A returned
// error rejects construction at the current path.
func (b *WrapperBuilder) Check(fn func(v any) error) *WrapperBuilder {
	if fn != nil {
		b.checks = append(b.checks, fn)
	}
	return b
}

// Enum restricts the wrapper to a fixed set of allowed values.
func (b *WrapperBuilder) Enum(allowed ...any) *WrapperBuilder {
	set := make(map[any]struct{}, len(allowed))
	for _, v := range allowed {
		c, ok := modeltree.CanonScalar(v)
		if !ok {
			err := modeltree.NewDefinitionError(b.name, "non-scalar enum value %v (%T)", v, v)
			b.checks = append(b.checks, func(any) error { return err })
			return b
		}
		set[c] = struct{}{}
	}
	name := b.name
	return b.Check(func(v any) error {
		if _, ok := set[v]; !ok {
			return fmt.Errorf("unknown value %v of %s", v, name)
		}
		return nil
	})
}

// Build resolves the declaration into an immutable WrapperType.
func (b *WrapperBuilder) Build() (*modeltree.WrapperType, error) {
	checks := b.checks
	var check func(v any) error
	if len(checks) > 0 {
		check = func(v any) error {
			for _, fn := range checks {
				if err := fn(v); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return modeltree.NewWrapperType(b.name, b.prim, check)
}

// MustBuild is like Build but panics on definition errors.
func (b *WrapperBuilder) MustBuild() *modeltree.WrapperType {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
