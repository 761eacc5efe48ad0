package ast

import (
	"strconv"
	"strings"
)

// AccessorKind identifies the variant stored in an [Accessor].
type AccessorKind uint8

const (
	None     AccessorKind = iota // plain key, no bracket suffix
	Index                        // key[3]
	Filter                       // key[@field=value@other=value]
	Wildcard                     // key[*]
)

var accessorNames = [...]string{
	None:     "none",
	Index:    "index",
	Filter:   "filter",
	Wildcard: "wildcard",
}

// String returns the lower-case name of k.
func (k AccessorKind) String() string {
	if int(k) < len(accessorNames) {
		return accessorNames[k]
	}
	return "AccessorKind(" + strconv.Itoa(int(k)) + ")"
}

// Accessor is a tagged union describing how a segment selects into the
// sequence found under its key. Only the fields belonging to Kind are set.
type Accessor struct {
	Kind       AccessorKind
	Index      int64       // Index: position, negative counts from the end
	Conditions []Condition // Filter: AND-combined field conditions
	Rest       *Query      // Wildcard: remainder evaluated against every element
}

// Condition is one @field=value clause of a filter accessor.
type Condition struct {
	Field string
	Value string
}

// IndexAccessor returns an Accessor selecting position idx.
func IndexAccessor(idx int64) Accessor {
	return Accessor{Kind: Index, Index: idx}
}

// FilterAccessor returns an Accessor selecting the first element matching
// every condition.
func FilterAccessor(conds ...Condition) Accessor {
	return Accessor{Kind: Filter, Conditions: conds}
}

// WildcardAccessor returns an Accessor projecting rest across every element.
// A nil rest is treated as the empty query.
func WildcardAccessor(rest *Query) Accessor {
	if rest == nil {
		rest = NewQuery(".")
	}
	return Accessor{Kind: Wildcard, Rest: rest}
}

// Pick returns the element of seq at the accessor's index. Negative indices
// count from the end. ok is false when the index is out of range.
func (a *Accessor) Pick(seq []any) (v any, ok bool) {
	idx := normalizeIndex(a.Index, len(seq))
	if idx < 0 {
		return nil, false
	}
	return seq[idx], true
}

// Select returns the first element of seq satisfying every condition.
// norm, when non-nil, is applied to both sides of each comparison.
func (a *Accessor) Select(seq []any, norm func(string) string) (v any, ok bool) {
	for _, candidate := range seq {
		if a.Match(candidate, norm) {
			return candidate, true
		}
	}
	return nil, false
}

// writeTo writes the bracketed form of a, e.g. [2] or [@a=1@b=2], to buf.
// Nothing is written for None.
func (a *Accessor) writeTo(buf *strings.Builder) {
	switch a.Kind {
	case Index:
		buf.WriteByte('[')
		buf.WriteString(strconv.FormatInt(a.Index, 10))
		buf.WriteByte(']')
	case Filter:
		buf.WriteByte('[')
		for _, c := range a.Conditions {
			buf.WriteByte('@')
			buf.WriteString(c.Field)
			buf.WriteByte('=')
			buf.WriteString(c.Value)
		}
		buf.WriteByte(']')
	case Wildcard:
		buf.WriteString("[*]")
	}
}

// String returns the bracketed form of a.
func (a *Accessor) String() string {
	var buf strings.Builder
	a.writeTo(&buf)
	return buf.String()
}

// normalizeIndex converts a possibly-negative index to a non-negative index.
// Returns -1 if the index is out of bounds.
func normalizeIndex(idx int64, length int) int {
	if idx < 0 {
		idx += int64(length)
	}
	if idx < 0 || idx >= int64(length) {
		return -1
	}
	return int(idx)
}
