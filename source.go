package modeltree

import (
	"bytes"
	"context"
	"io"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/modeltree/modeltree/internal/untyped"
)

// JSONReader decodes one JSON document from r into a normalized untyped
// value. Numbers are decoded without precision loss and canonicalized to
// int64/float64.
func JSONReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		e := NewConstruction(CodeParseError, Path{}, err.Error())
		e.Cause = err
		return nil, e
	}
	return untyped.Normalize(v), nil
}

// JSONBytes decodes one JSON document from b.
func JSONBytes(b []byte) (any, error) { return JSONReader(bytes.NewReader(b)) }

// YAMLReader decodes one YAML document from r into a normalized untyped
// value. Mapping keys are coerced to strings.
func YAMLReader(r io.Reader) (any, error) {
	dec := yaml.NewDecoder(r)
	var v any
	if err := dec.Decode(&v); err != nil {
		e := NewConstruction(CodeParseError, Path{}, err.Error())
		e.Cause = err
		return nil, e
	}
	return untyped.Normalize(v), nil
}

// YAMLBytes decodes one YAML document from b.
func YAMLBytes(b []byte) (any, error) { return YAMLReader(bytes.NewReader(b)) }

// EncodeJSON serializes a constructed node to JSON.
func EncodeJSON(v Value) ([]byte, error) { return j.Marshal(v.Serialize()) }

// EncodeYAML serializes a constructed node to YAML.
func EncodeYAML(v Value) ([]byte, error) { return yaml.Marshal(v.Serialize()) }

// ConstructJSON constructs a Record straight from JSON bytes.
func (t *ModelType) ConstructJSON(ctx context.Context, b []byte) (*Record, error) {
	v, err := JSONBytes(b)
	if err != nil {
		return nil, err
	}
	return t.Construct(ctx, v)
}

// ConstructYAML constructs a Record straight from YAML bytes.
func (t *ModelType) ConstructYAML(ctx context.Context, b []byte) (*Record, error) {
	v, err := YAMLBytes(b)
	if err != nil {
		return nil, err
	}
	return t.Construct(ctx, v)
}

// ConstructJSON constructs a Union straight from JSON bytes.
func (u *UnionType) ConstructJSON(ctx context.Context, b []byte) (*Union, error) {
	v, err := JSONBytes(b)
	if err != nil {
		return nil, err
	}
	return u.Construct(ctx, v)
}

// ConstructYAML constructs a Union straight from YAML bytes.
func (u *UnionType) ConstructYAML(ctx context.Context, b []byte) (*Union, error) {
	v, err := YAMLBytes(b)
	if err != nil {
		return nil, err
	}
	return u.Construct(ctx, v)
}
