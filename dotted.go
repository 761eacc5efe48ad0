// Package dotted reads and writes values inside decoded JSON/YAML trees
// (map[string]any, []any and scalars) using Mongo-style dotted paths.
//
// Beyond plain keys ("a.b.c"), a path component may carry one bracketed
// accessor that selects into a sequence:
//
//	items[2].name                       // element at index 2 (negative counts from the end)
//	items[@status=active].id            // first element whose status is "active"
//	items[@status=active@region=west]   // all clauses must match
//	items[*].id                         // id of every element
//
// Filter comparisons are made on string forms, so 3, 3.0 and "3" compare
// equal. Reads never fail because something is missing: a missing key, an
// index out of range, a filter without a match and a JSON null all resolve
// to the caller's default.
//
// [Set] does not interpret accessors: bracket text in a write path is part of
// the key it creates.
package dotted

import (
	"errors"
	"fmt"

	"github.com/agentable/dotted/internal/ast"
	"github.com/agentable/dotted/internal/parser"
	"github.com/go-json-experiment/json"
)

// Path is a compiled dotted path. Safe for concurrent use.
type Path struct {
	query *ast.Query
}

// Parse compiles a path split on the delimiter given by [WithDelimiter].
// Bracket text that is not a valid accessor becomes part of the key. Returns
// [ErrPathParse] only when the delimiter is empty.
func Parse(path string, opts ...Option) (*Path, error) {
	o := newOptions(opts)
	return parse(path, o)
}

// MustParse compiles a path. Panics on failure.
func MustParse(path string, opts ...Option) *Path {
	p, err := Parse(path, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func parse(path string, o *options) (*Path, error) {
	internalParser, err := parser.New(path, o.delimiter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPathParse, err)
	}

	query, err := internalParser.Parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPathParse, err)
	}

	for _, seg := range query.Segments() {
		if seg.Absorbed() {
			o.logger.Debug("bracket text kept as key", "path", path, "key", seg.Key())
		}
	}
	return &Path{query: query}, nil
}

// String returns the path text of p.
func (p *Path) String() string {
	if p.query == nil {
		return ""
	}
	return p.query.String()
}

// Delimiter returns the delimiter p was compiled with.
func (p *Path) Delimiter() string {
	if p.query == nil {
		return DefaultDelimiter
	}
	return p.query.Delimiter()
}

// MarshalText implements encoding.TextMarshaler.
func (p *Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The default delimiter
// is used.
func (p *Path) UnmarshalText(text []byte) error {
	path, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = *path
	return nil
}

// Get resolves p against root. When nothing is found it returns the value
// given by [WithDefault]. A non-nil error wraps [ErrTypeMismatch] and means
// an accessor met a scalar where a sequence was expected. [WithDelimiter] is
// ignored: p keeps the delimiter it was compiled with.
func (p *Path) Get(root any, opts ...Option) (any, error) {
	o := newOptions(opts)
	return p.get(root, o)
}

func (p *Path) get(root any, o *options) (any, error) {
	if p.query == nil {
		return root, nil
	}
	v, found, err := walk(p.query, root, o)
	if err != nil {
		return nil, err
	}
	if !found {
		return o.def, nil
	}
	return v, nil
}

// Get compiles path and resolves it against root. See [Path.Get].
func Get(root any, path string, opts ...Option) (any, error) {
	o := newOptions(opts)
	p, err := parse(path, o)
	if err != nil {
		return nil, err
	}
	return p.get(root, o)
}

// Value is like [Get] but reports every failure as the default value.
func Value(root any, path string, opts ...Option) any {
	o := newOptions(opts)
	p, err := parse(path, o)
	if err != nil {
		return o.def
	}
	v, err := p.get(root, o)
	if err != nil {
		o.logger.Debug("value lookup failed", "path", path, "error", err)
		return o.def
	}
	return v
}

// GetJSON unmarshals src and resolves path against it.
// Uses github.com/go-json-experiment/json for unmarshaling.
func GetJSON(src []byte, path string, opts ...Option) (any, error) {
	var v any
	if err := json.Unmarshal(src, &v, json.DefaultOptionsV2()); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	return Get(v, path, opts...)
}

// walk follows q from root while the current value is a mapping. found is
// false when a key is missing, an accessor selects nothing, segments are
// left unconsumed or the value reached is nil.
func walk(q *ast.Query, root any, o *options) (v any, found bool, err error) {
	segments := q.Segments()
	cur := root
	i := 0
	for ; i < len(segments); i++ {
		m, ok := cur.(map[string]any)
		if !ok {
			break
		}
		seg := &segments[i]
		cur, ok = m[seg.Key()]
		if !ok || cur == nil {
			return nil, false, nil
		}

		acc := seg.Accessor()
		switch acc.Kind {
		case ast.Index:
			seq, ok := sequence(cur)
			if !ok {
				return nil, false, mismatch(q, i, cur)
			}
			if cur, ok = acc.Pick(seq); !ok {
				return nil, false, nil
			}
		case ast.Filter:
			seq, ok := sequence(cur)
			if !ok {
				if _, isMap := cur.(map[string]any); !isMap {
					return nil, false, mismatch(q, i, cur)
				}
				// A lone mapping stands in for a one-element sequence.
				seq = []any{cur}
			}
			if cur, ok = acc.Select(seq, o.normalizer); !ok {
				o.logger.Debug("filter matched nothing", "segment", seg.String(), "candidates", len(seq))
				return nil, false, nil
			}
		case ast.Wildcard:
			seq, ok := sequence(cur)
			if !ok {
				return nil, false, mismatch(q, i, cur)
			}
			return project(acc.Rest, seq, o)
		}
	}

	if i < len(segments) || cur == nil {
		return nil, false, nil
	}
	return cur, true, nil
}

// project resolves rest against every element of seq. Elements where rest
// finds nothing contribute nil. The result is found even when empty.
func project(rest *ast.Query, seq []any, o *options) (any, bool, error) {
	out := make([]any, 0, len(seq))
	for _, el := range seq {
		v, _, err := walk(rest, el, o)
		if err != nil {
			return nil, false, err
		}
		out = append(out, v)
	}
	return out, true, nil
}

// mismatch reports an accessor at segment i applied to a non-sequence.
func mismatch(q *ast.Query, i int, got any) error {
	seg := &q.Segments()[i]
	return fmt.Errorf("%w: %s accessor on %q expects a sequence, got %s",
		ErrTypeMismatch, seg.Accessor().Kind, seg.Key(), KindOf(got))
}

