package modeltree

import (
	"context"

	"github.com/modeltree/modeltree/internal/untyped"
)

// CanonScalar canonicalizes a scalar input value: numbers fold to
// int64/float64, json.Number is parsed, string/bool/nil pass through. The
// second result reports whether v is a scalar at all. Wrapper checks receive
// values already in this canonical form.
func CanonScalar(v any) (any, bool) { return untyped.Canon(v) }

func canonScalar(v any) (any, bool) { return untyped.Canon(v) }

// NodeKind enumerates the closed set of node kinds a constructed tree is made
// of. The visitor and the serializer switch over this set exhaustively, so
// adding a kind is a compile-time-visible change.
type NodeKind int

const (
	KindPrimitive NodeKind = iota
	KindWrapper
	KindRecord
	KindUnion
	KindList
)

func (k NodeKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindWrapper:
		return "wrapper"
	case KindRecord:
		return "record"
	case KindUnion:
		return "union"
	case KindList:
		return "list"
	}
	return "unknown"
}

// Value is one node of a constructed tree. Nodes form a strict ownership
// tree: every node has exactly one parent and no node is shared or cyclic.
type Value interface {
	NodeKind() NodeKind
	// Serialize emits the node back as a JSON-shaped value. Serializing a
	// freshly constructed tree and constructing from the result again is
	// idempotent.
	Serialize() any

	validate(ctx context.Context, path Path) error
}

// Primitive holds one canonicalized scalar: int64, float64, string, bool or
// nil.
type Primitive struct {
	val any
}

// NewPrimitive wraps an already-canonicalized scalar.
func NewPrimitive(v any) *Primitive { return &Primitive{val: v} }

func (p *Primitive) NodeKind() NodeKind { return KindPrimitive }

// Value returns the scalar itself.
func (p *Primitive) Value() any { return p.val }

func (p *Primitive) Serialize() any { return p.val }

func (p *Primitive) validate(ctx context.Context, path Path) error { return nil }

// List holds the elements of a homogeneous list field in document order.
type List struct {
	elems []Value
}

func (l *List) NodeKind() NodeKind { return KindList }

// Len returns the element count.
func (l *List) Len() int { return len(l.elems) }

// At returns the i-th element.
func (l *List) At(i int) Value { return l.elems[i] }

func (l *List) Serialize() any {
	out := make([]any, len(l.elems))
	for i, e := range l.elems {
		out[i] = e.Serialize()
	}
	return out
}

func (l *List) validate(ctx context.Context, path Path) error {
	for i, e := range l.elems {
		if err := e.validate(ctx, path.Index(i)); err != nil {
			return err
		}
	}
	return nil
}
