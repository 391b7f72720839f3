package modeltree

import (
	"context"
	"fmt"
)

// WrapperType declares a scalar wrapper: one primitive kind plus a
// construction-time check over the raw value. Checks run when data is
// coerced, so a Wrapper instance never holds a value its type rejects.
type WrapperType struct {
	name  string
	prim  PrimKind
	check func(v any) error
}

// NewWrapperType resolves a wrapper type. check may be nil for a wrapper that
// only narrows the primitive kind; a non-nil check receives the canonicalized
// scalar and returns a plain error describing the rejection.
func NewWrapperType(name string, prim PrimKind, check func(v any) error) (*WrapperType, error) {
	if name == "" {
		return nil, NewDefinitionError("wrapper", "empty type name")
	}
	return &WrapperType{name: name, prim: prim, check: check}, nil
}

// MustWrapperType is like NewWrapperType but panics on definition errors.
func MustWrapperType(name string, prim PrimKind, check func(v any) error) *WrapperType {
	t, err := NewWrapperType(name, prim, check)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the declared type name.
func (t *WrapperType) Name() string { return t.name }

// PrimKind returns the wrapped primitive kind.
func (t *WrapperType) PrimKind() PrimKind { return t.prim }

// Construct builds a Wrapper from one raw primitive.
func (t *WrapperType) Construct(raw any) (*Wrapper, error) {
	return t.constructAt(raw, Path{})
}

func (t *WrapperType) constructAt(raw any, path Path) (*Wrapper, error) {
	v, err := PrimitiveOf(t.prim).constructPrimitive(raw, path)
	if err != nil {
		return nil, err
	}
	if t.check != nil {
		if cerr := t.check(v); cerr != nil {
			if e, ok := AsError(cerr); ok {
				if len(e.Path) == 0 {
					e.Path = path
				}
				return nil, e
			}
			e := NewConstruction(CodeInvalidValue, path, cerr.Error())
			e.Cause = cerr
			return nil, e
		}
	}
	return &Wrapper{typ: t, val: v}, nil
}

// Wrapper owns exactly one validated primitive. Equality, ordering and string
// conversion delegate to the wrapped value.
type Wrapper struct {
	typ *WrapperType
	val any
}

// Type returns the wrapper's declared type.
func (w *Wrapper) Type() *WrapperType { return w.typ }

func (w *Wrapper) NodeKind() NodeKind { return KindWrapper }

// Value returns the wrapped primitive.
func (w *Wrapper) Value() any { return w.val }

// Serialize returns the wrapped primitive verbatim.
func (w *Wrapper) Serialize() any { return w.val }

func (w *Wrapper) String() string { return fmt.Sprint(w.val) }

// Equal compares the wrapped primitive against another scalar or Wrapper.
func (w *Wrapper) Equal(other any) bool {
	if ow, ok := other.(*Wrapper); ok {
		other = ow.val
	}
	c, ok := canonScalar(other)
	if !ok {
		return false
	}
	return scalarCompare(w.val, c) == 0
}

// Less orders the wrapped primitive against another scalar or Wrapper.
// Values of incomparable kinds are never less.
func (w *Wrapper) Less(other any) bool {
	if ow, ok := other.(*Wrapper); ok {
		other = ow.val
	}
	c, ok := canonScalar(other)
	if !ok {
		return false
	}
	return scalarCompare(w.val, c) < 0
}

// Construction already ran the check; the deferred pass has nothing to add.
func (w *Wrapper) validate(ctx context.Context, path Path) error { return nil }

// scalarCompare orders two canonical scalars: -1, 0 or +1, with +1 also used
// for incomparable kind pairs.
func scalarCompare(a, b any) int {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
		return 1
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case bv:
				return -1
			}
			return 1
		}
	case nil:
		if b == nil {
			return 0
		}
	}
	return 1
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
