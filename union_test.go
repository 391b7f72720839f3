package modeltree_test

import (
	"context"
	"reflect"
	"testing"

	modeltree "github.com/modeltree/modeltree"
	g "github.com/modeltree/modeltree/dsl"
)

// packageModel builds the document model used across the union tests: a
// title plus a list of content items discriminated on an integer key.
func packageModel(t *testing.T) (*modeltree.ModelType, *modeltree.UnionType) {
	t.Helper()

	ub := g.Union("RandomModel", "key")

	pie := g.Model("PieModel").
		Field("key", g.Literal(314)).Required().
		Field("value", g.Int()).Required().
		MustBuild()
	europe := g.Model("EuropeModel").
		Field("key", g.Literal(271)).Required().
		Field("value", g.String()).Required().
		MustBuild()

	u := ub.Variant(pie).Variant(europe).MustBuild()

	pkg := g.Model("PackageModel").
		Field("title", g.String()).Required().
		Field("content", g.ListOf(g.OneOf(u))).Required().
		MustBuild()
	return pkg, u
}

func TestUnion_DiscriminatorDispatch(t *testing.T) {
	ctx := context.Background()
	pkg, _ := packageModel(t)

	rec, err := pkg.Construct(ctx, map[string]any{
		"title": "Bar42",
		"content": []any{
			map[string]any{"key": 314, "value": 15926535},
			map[string]any{"key": 271, "value": "lol"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := rec.Validate(ctx); err != nil {
		t.Fatalf("validate: %v", err)
	}

	content := rec.GetList("content")
	first := content.At(0).(*modeltree.Union)
	second := content.At(1).(*modeltree.Union)
	if first.Get("value") != int64(15926535) {
		t.Fatalf("content[0].value: %v", first.Get("value"))
	}
	if second.Get("value") != "lol" {
		t.Fatalf("content[1].value: %v", second.Get("value"))
	}
	if first.Variant().Type().Name() != "PieModel" || second.Variant().Type().Name() != "EuropeModel" {
		t.Fatalf("variants resolved wrong: %s / %s",
			first.Variant().Type().Name(), second.Variant().Type().Name())
	}
	if first.Tag() != int64(314) {
		t.Fatalf("tag: %v", first.Tag())
	}
}

func TestUnion_UnknownDiscriminator(t *testing.T) {
	ctx := context.Background()
	pkg, _ := packageModel(t)

	_, err := pkg.Construct(ctx, map[string]any{
		"title":   "Bar42",
		"content": []any{map[string]any{"key": 999, "value": 1}},
	})
	e, ok := modeltree.AsError(err)
	if !ok || e.Code != modeltree.CodeDiscriminatorUnknown {
		t.Fatalf("expected discriminator_unknown, got %v", err)
	}
	if e.Path.Pointer() != "/content/0/key" {
		t.Fatalf("path: %q", e.Path.Pointer())
	}
}

func TestUnion_MissingDiscriminator(t *testing.T) {
	ctx := context.Background()
	_, u := packageModel(t)

	_, err := u.Construct(ctx, map[string]any{"value": 1})
	e, ok := modeltree.AsError(err)
	if !ok || e.Code != modeltree.CodeDiscriminatorMissing || e.Path.Pointer() != "/key" {
		t.Fatalf("expected discriminator_missing at /key, got %v", err)
	}
}

func TestUnion_VariantFieldsValidatedAsRecord(t *testing.T) {
	ctx := context.Background()
	_, u := packageModel(t)

	// key resolves to PieModel, whose value must be an int
	_, err := u.Construct(ctx, map[string]any{"key": 314, "value": "lol"})
	e, ok := modeltree.AsError(err)
	if !ok || e.Code != modeltree.CodeInvalidType || e.Path.Pointer() != "/value" {
		t.Fatalf("expected invalid_type at /value, got %v", err)
	}
}

func TestUnion_SerializeReemitsDiscriminator(t *testing.T) {
	ctx := context.Background()
	_, u := packageModel(t)

	n, err := u.Construct(ctx, map[string]any{"key": 271, "value": "lol"})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	wire := n.Serialize().(map[string]any)
	if wire["key"] != int64(271) {
		t.Fatalf("discriminator not re-emitted: %#v", wire)
	}
	again, err := u.Construct(ctx, wire)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if again.Variant().Type() != n.Variant().Type() {
		t.Fatalf("round trip resolved a different variant")
	}
	if !reflect.DeepEqual(wire, again.Serialize()) {
		t.Fatalf("round trip not idempotent")
	}
}

func TestUnion_DuplicateLiteralIsDefinitionError(t *testing.T) {
	a := g.Model("A").Field("key", g.Literal(1)).Required().MustBuild()
	b := g.Model("B").Field("key", g.Literal(1)).Required().MustBuild()
	if _, err := g.Union("U", "key").Variant(a).Variant(b).Build(); err == nil {
		t.Fatalf("expected duplicate-literal definition error")
	}
}

func TestUnion_VariantWithoutLiteralIsDefinitionError(t *testing.T) {
	a := g.Model("A").Field("key", g.Int()).Required().MustBuild()
	if _, err := g.Union("U", "key").Variant(a).Build(); err == nil {
		t.Fatalf("expected missing-literal definition error")
	}
}

func TestUnion_NoVariantsIsDefinitionError(t *testing.T) {
	if _, err := g.Union("U", "key").Build(); err == nil {
		t.Fatalf("expected no-variants definition error")
	}
}

func TestUnion_JSONDecodedTagsMatchGoLiterals(t *testing.T) {
	ctx := context.Background()
	pkg, _ := packageModel(t)

	// numbers arrive as json.Number through the JSON source; the registry
	// keyed by Go int literals must still match
	doc, err := modeltree.JSONBytes([]byte(`{
		"title": "Bar42",
		"content": [
			{"key": 314, "value": 15926535},
			{"key": 271, "value": "lol"}
		]
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rec, err := pkg.Construct(ctx, doc)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	first := rec.GetList("content").At(0).(*modeltree.Union)
	if first.Get("value") != int64(15926535) {
		t.Fatalf("value: %v", first.Get("value"))
	}
}
