package ast

import "strings"

// Query is a compiled dotted path: an ordered list of segments and the
// delimiter that separated them. A wildcard segment is always the last one;
// everything after it lives in the accessor's Rest query.
type Query struct {
	segments  []Segment
	delimiter string
}

// NewQuery creates a [Query] from segments joined by delimiter.
func NewQuery(delimiter string, segments ...Segment) *Query {
	return &Query{segments: segments, delimiter: delimiter}
}

// Segments returns the query's segments.
func (q *Query) Segments() []Segment { return q.segments }

// Delimiter returns the delimiter the query was parsed with.
func (q *Query) Delimiter() string { return q.delimiter }

// IsEmpty reports whether the query has no segments and therefore resolves
// to its input unchanged.
func (q *Query) IsEmpty() bool { return len(q.segments) == 0 }

// writeTo writes the path text of q to buf.
func (q *Query) writeTo(buf *strings.Builder) {
	for i := range q.segments {
		if i > 0 {
			buf.WriteString(q.delimiter)
		}
		seg := &q.segments[i]
		seg.writeTo(buf)
		if seg.accessor.Kind == Wildcard && !seg.accessor.Rest.IsEmpty() {
			buf.WriteString(q.delimiter)
			seg.accessor.Rest.writeTo(buf)
		}
	}
}

// String returns the path text of the query, e.g. items[@id=3].name.
func (q *Query) String() string {
	var buf strings.Builder
	q.writeTo(&buf)
	return buf.String()
}
