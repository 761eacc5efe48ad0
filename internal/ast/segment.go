package ast

import "strings"

// Segment is one delimited component of a path: a mapping key and an
// optional accessor applied to the value found under that key.
type Segment struct {
	key      string
	accessor Accessor
	absorbed bool
}

// Key creates a plain [Segment] without an accessor.
func Key(key string) Segment {
	return Segment{key: key}
}

// Literal creates a plain [Segment] for a component whose bracket suffix did
// not match the accessor grammar. The whole component text is the key.
func Literal(key string) Segment {
	return Segment{key: key, absorbed: true}
}

// Accessed creates a [Segment] applying acc to the value under key.
func Accessed(key string, acc Accessor) Segment {
	return Segment{key: key, accessor: acc}
}

// Key returns the mapping key looked up by the segment.
func (s *Segment) Key() string { return s.key }

// Accessor returns the segment's accessor. Kind is [None] for plain keys.
func (s *Segment) Accessor() *Accessor { return &s.accessor }

// Absorbed reports whether the segment's key contains bracket text that was
// not a valid accessor.
func (s *Segment) Absorbed() bool { return s.absorbed }

// writeTo writes the segment as it appears in a path, without the remainder
// of a wildcard.
func (s *Segment) writeTo(buf *strings.Builder) {
	buf.WriteString(s.key)
	s.accessor.writeTo(buf)
}

// String returns the textual form of the segment.
func (s *Segment) String() string {
	var buf strings.Builder
	s.writeTo(&buf)
	return buf.String()
}
