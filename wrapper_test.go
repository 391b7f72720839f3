package modeltree_test

import (
	"context"
	"reflect"
	"testing"

	modeltree "github.com/modeltree/modeltree"
	g "github.com/modeltree/modeltree/dsl"
)

func statusCode(t *testing.T) *modeltree.WrapperType {
	t.Helper()
	return g.Wrapper("StatusCode", modeltree.PrimString).
		Enum("foo", "bar", "lol").
		MustBuild()
}

func TestWrapper_AllowedValue(t *testing.T) {
	ctx := context.Background()
	m := g.Model("SomeModel").
		Field("code", g.WrapperOf(statusCode(t))).Required().
		MustBuild()

	rec, err := m.Construct(ctx, map[string]any{"code": "bar"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	w := rec.GetWrapper("code")
	if w.Value() != "bar" || w.String() != "bar" {
		t.Fatalf("wrapped value: %v", w.Value())
	}
	if !w.Equal("bar") || w.Equal("foo") {
		t.Fatalf("equality does not delegate to the primitive")
	}
	if !reflect.DeepEqual(rec.Serialize(), map[string]any{"code": "bar"}) {
		t.Fatalf("serialize: %#v", rec.Serialize())
	}
}

func TestWrapper_RejectedValueFailsConstruction(t *testing.T) {
	ctx := context.Background()
	m := g.Model("SomeModel").
		Field("code", g.WrapperOf(statusCode(t))).Required().
		MustBuild()

	_, err := m.Construct(ctx, map[string]any{"code": "nope"})
	e, ok := modeltree.AsError(err)
	if !ok || e.Kind != modeltree.Construction {
		t.Fatalf("expected construction error, got %v", err)
	}
	if e.Path.Pointer() != "/code" {
		t.Fatalf("path: %q", e.Path.Pointer())
	}
}

func TestWrapper_PrimitiveKindEnforced(t *testing.T) {
	_, err := statusCode(t).Construct(42)
	if e, ok := modeltree.AsError(err); !ok || e.Code != modeltree.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}

func TestWrapper_Ordering(t *testing.T) {
	limit := g.Wrapper("Limit", modeltree.PrimInt).MustBuild()
	w, err := limit.Construct(10)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if !w.Less(11) || w.Less(10) || w.Less(9) {
		t.Fatalf("ordering does not delegate to the primitive")
	}
	// mixed int/float comparison follows numeric order
	if !w.Less(10.5) {
		t.Fatalf("int wrapper must compare against floats")
	}
	other, err := limit.Construct(12)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if !w.Less(other) {
		t.Fatalf("wrapper-to-wrapper ordering failed")
	}
}

func TestWrapper_SerializeVerbatim(t *testing.T) {
	sc := statusCode(t)
	w, err := sc.Construct("lol")
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if w.Serialize() != "lol" {
		t.Fatalf("serialize must return the wrapped primitive, got %v", w.Serialize())
	}
}

func TestWrapper_CustomCheckMessage(t *testing.T) {
	ctx := context.Background()
	even := g.Wrapper("Even", modeltree.PrimInt).
		Check(func(v any) error {
			if v.(int64)%2 != 0 {
				return errOdd{}
			}
			return nil
		}).
		MustBuild()
	m := g.Model("M").Field("n", g.WrapperOf(even)).Required().MustBuild()

	_, err := m.Construct(ctx, map[string]any{"n": 3})
	e, ok := modeltree.AsError(err)
	if !ok || e.Code != modeltree.CodeInvalidValue || e.Message != "odd value" {
		t.Fatalf("expected custom message, got %v", err)
	}
}

type errOdd struct{}

func (errOdd) Error() string { return "odd value" }
