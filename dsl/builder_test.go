package dsl_test

import (
	"context"
	"strings"
	"testing"

	modeltree "github.com/modeltree/modeltree"
	g "github.com/modeltree/modeltree/dsl"
)

func TestModelBuilder_RequireUnknownName(t *testing.T) {
	_, err := g.Model("M").
		Field("a", g.Int()).
		Require("missing").
		Build()
	if err == nil || !strings.Contains(err.Error(), "Require") {
		t.Fatalf("expected Require-before-Field error, got %v", err)
	}
}

func TestModelBuilder_FieldStepChaining(t *testing.T) {
	ctx := context.Background()
	m := g.Model("M").
		Field("a", g.Int()).Required().
		Field("b", g.String()).Default("fallback").
		Field("c", g.Bool()).Optional().
		MustBuild()

	rec, err := m.Construct(ctx, map[string]any{"a": 1})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if rec.GetString("b") != "fallback" {
		t.Fatalf("default not applied: %v", rec.Get("b"))
	}
	if rec.Node("c") != nil {
		t.Fatalf("optional without default must stay absent")
	}
}

func TestModelBuilder_DefaultRunsThroughSpec(t *testing.T) {
	ctx := context.Background()
	m := g.Model("M").
		Field("n", g.Int()).Default("not a number").
		MustBuild()
	_, err := m.Construct(ctx, map[string]any{})
	if e, ok := modeltree.AsError(err); !ok || e.Code != modeltree.CodeInvalidType {
		t.Fatalf("expected invalid_type from default, got %v", err)
	}
}

func TestWrapperBuilder_ChecksCompose(t *testing.T) {
	w := g.Wrapper("Port", modeltree.PrimInt).
		Check(func(v any) error {
			if v.(int64) < 1 {
				return errTooSmall{}
			}
			return nil
		}).
		Check(func(v any) error {
			if v.(int64) > 65535 {
				return errTooBig{}
			}
			return nil
		}).
		MustBuild()

	if _, err := w.Construct(8080); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := w.Construct(0); err == nil {
		t.Fatalf("expected first check to reject")
	}
	if _, err := w.Construct(70000); err == nil {
		t.Fatalf("expected second check to reject")
	}
}

func TestWrapperBuilder_EnumNonScalarIsDefinitionError(t *testing.T) {
	w := g.Wrapper("Bad", modeltree.PrimString).
		Enum([]any{"not", "scalar"}).
		MustBuild()
	if _, err := w.Construct("anything"); err == nil {
		t.Fatalf("expected the definition mistake to surface on construction")
	}
}

func TestLiteral_NonScalarPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for non-scalar literal")
		}
	}()
	g.Literal(map[string]any{})
}

func TestUnionBuilder_SpecUsableBeforeBuild(t *testing.T) {
	ctx := context.Background()
	ub := g.Union("Tree", "kind")

	leaf := g.Model("Leaf").
		Field("kind", g.Literal("leaf")).Required().
		Field("value", g.Int()).Required().
		MustBuild()
	node := g.Model("Node").
		Field("kind", g.Literal("node")).Required().
		Field("left", ub.Spec()).Required().
		Field("right", ub.Spec()).Required().
		MustBuild()

	tree := ub.Variant(leaf).Variant(node).MustBuild()

	n, err := tree.Construct(ctx, map[string]any{
		"kind": "node",
		"left": map[string]any{"kind": "leaf", "value": 1},
		"right": map[string]any{
			"kind":  "node",
			"left":  map[string]any{"kind": "leaf", "value": 2},
			"right": map[string]any{"kind": "leaf", "value": 3},
		},
	})
	if err != nil {
		t.Fatalf("recursive construct: %v", err)
	}
	right := n.Node("right").(*modeltree.Union)
	if right.Node("left").(*modeltree.Union).Get("value") != int64(2) {
		t.Fatalf("recursive access failed")
	}
}

type errTooSmall struct{}

func (errTooSmall) Error() string { return "too small" }

type errTooBig struct{}

func (errTooBig) Error() string { return "too big" }
