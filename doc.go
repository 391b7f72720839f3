package modeltree

// Package modeltree is a declarative data-modeling and validation engine.
//
// It provides:
//
// - Record types (ModelType) with ordered field tables resolved once at
//   definition time, constructing typed trees from JSON-shaped values
// - Discriminated unions (UnionType) with an explicit variant registry keyed
//   by the literal each variant declares for the discriminator field
// - Scalar wrappers (WrapperType) running construction-time checks over one
//   primitive value
// - A generic depth-first Visitor dispatching over the closed node-kind set
// - A two-kind, path-aware error taxonomy (Construction/Validation)
//
// Design policy:
// - Keep only public APIs in the root package; put normalization details
//   under internal/.
// - Place the builder DSL under dsl/, the expression-tree consumer under
//   expr/, and the CLI under cmd/modeltree.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	t := buildModel()
//	rec, err := t.ConstructJSON(ctx, data)
//	if err := rec.Validate(ctx); err != nil { ... }
//	wire := rec.Serialize()
