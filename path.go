package modeltree

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: either a field name or a list index.
type Segment struct {
	name    string
	index   int
	indexed bool
}

// FieldSeg returns a field-name segment.
func FieldSeg(name string) Segment { return Segment{name: name} }

// IndexSeg returns a list-index segment.
func IndexSeg(i int) Segment { return Segment{index: i, indexed: true} }

// IsIndex reports whether the segment addresses a list element.
func (s Segment) IsIndex() bool { return s.indexed }

// Name returns the field name for a field segment ("" for index segments).
func (s Segment) Name() string { return s.name }

// Index returns the list index for an index segment (0 for field segments).
func (s Segment) Index() int { return s.index }

// Path locates a node inside a document as an ordered segment sequence.
// Appending copies, so a Path handed to an error or a hook stays stable even
// while the traversal that produced it keeps descending.
type Path []Segment

// Field returns a new Path with a field-name segment appended.
func (p Path) Field(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, FieldSeg(name))
}

// Index returns a new Path with a list-index segment appended.
func (p Path) Index(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, IndexSeg(i))
}

// Pointer renders the path as an RFC 6901 JSON Pointer ("/" for the root).
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, s := range p {
		b.WriteByte('/')
		if s.indexed {
			b.WriteString(strconv.Itoa(s.index))
			continue
		}
		// escape '~' -> '~0', '/' -> '~1' per RFC 6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s.name, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// Segments returns the raw segment values: string for fields, int for indices.
func (p Path) Segments() []any {
	out := make([]any, len(p))
	for i, s := range p {
		if s.indexed {
			out[i] = s.index
		} else {
			out[i] = s.name
		}
	}
	return out
}

func (p Path) String() string { return p.Pointer() }
