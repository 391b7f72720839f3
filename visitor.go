package modeltree

// Visitor walks an already-built tree depth-first, dispatching on the closed
// node-kind set. Unset hooks default to recursion only, so a visitor declares
// just the kinds it cares about.
//
// Two failure policies are supported. A hook that returns an error stops the
// traversal immediately with that error (field-local checks fail fast). A
// hook may instead accumulate findings on captured state and the caller
// raises once after Visit returns (cross-object checks aggregate over a whole
// tree, or over several trees visited with the same Visitor).
type Visitor struct {
	// Record runs before the record's fields are visited.
	Record func(r *Record, t *ModelType, path Path) error
	// Wrapper runs for every wrapper leaf.
	Wrapper func(w *Wrapper, t *WrapperType, path Path) error
	// Primitive runs for every bare scalar leaf.
	Primitive func(v any, path Path) error
}

// Visit traverses node: record fields in declaration order, list elements in
// index order with their index on the path, unions transparently through to
// their resolved variant.
func (vis *Visitor) Visit(node Value) error {
	return vis.visit(node, Path{})
}

func (vis *Visitor) visit(node Value, path Path) error {
	switch n := node.(type) {
	case *Record:
		if vis.Record != nil {
			if err := vis.Record(n, n.typ, path); err != nil {
				return err
			}
		}
		for i, f := range n.typ.fields {
			if n.values[i] == nil {
				continue
			}
			if err := vis.visit(n.values[i], path.Field(f.Name)); err != nil {
				return err
			}
		}
		return nil
	case *Wrapper:
		if vis.Wrapper != nil {
			return vis.Wrapper(n, n.typ, path)
		}
		return nil
	case *Union:
		return vis.visit(n.rec, path)
	case *List:
		for i, e := range n.elems {
			if err := vis.visit(e, path.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case *Primitive:
		if vis.Primitive != nil {
			return vis.Primitive(n.val, path)
		}
		return nil
	}
	return NewValidation(CodeParseError, path, "unknown node kind")
}
