// Package parser turns delimited path strings such as "items[@id=3].name"
// into an [ast.Query].
//
// The grammar is deliberately forgiving: a bracket suffix that is not a valid
// index, filter or wildcard accessor is kept as part of the key text instead
// of being rejected.
package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/agentable/dotted/internal/ast"
)

// ErrEmptyDelimiter is returned when a path is parsed with an empty delimiter.
var ErrEmptyDelimiter = errors.New("empty delimiter")

// maxIndex bounds index accessors to the range exactly representable by a
// JSON number.
const maxIndex = 9007199254740991 // 2^53 - 1

// Parser parses one path string.
type Parser struct {
	src   string
	delim string
}

// New creates a new Parser for src split on delimiter.
func New(src, delimiter string) (*Parser, error) {
	if delimiter == "" {
		return nil, ErrEmptyDelimiter
	}
	return &Parser{src: src, delim: delimiter}, nil
}

// Parse parses the path and returns the compiled query. The empty path yields
// an empty query. A wildcard component ends segment parsing: the components
// after it are re-joined and parsed as the wildcard's own sub-query.
func (p *Parser) Parse() (*ast.Query, error) {
	if p.src == "" {
		return ast.NewQuery(p.delim), nil
	}

	parts := strings.Split(p.src, p.delim)
	segments := make([]ast.Segment, 0, len(parts))
	for i, part := range parts {
		seg := parseComponent(part)
		if seg.Accessor().Kind != ast.Wildcard {
			segments = append(segments, seg)
			continue
		}

		rest, err := (&Parser{src: strings.Join(parts[i+1:], p.delim), delim: p.delim}).Parse()
		if err != nil {
			return nil, err
		}
		segments = append(segments, ast.Accessed(seg.Key(), ast.WildcardAccessor(rest)))
		break
	}

	return ast.NewQuery(p.delim, segments...), nil
}

// parseComponent parses a single name or name[body] component.
func parseComponent(part string) ast.Segment {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		return ast.Key(part)
	}
	if !strings.HasSuffix(part, "]") || open == len(part)-1 {
		return ast.Literal(part)
	}

	name, body := part[:open], part[open+1:len(part)-1]
	acc, ok := parseAccessor(body)
	if !ok {
		return ast.Literal(part)
	}
	return ast.Accessed(name, acc)
}

// parseAccessor classifies a bracket body. ok is false when body matches
// none of the accessor forms.
func parseAccessor(body string) (ast.Accessor, bool) {
	switch {
	case body == "":
		return ast.Accessor{}, false
	case isInteger(body):
		idx, err := strconv.ParseInt(body, 10, 64)
		if err != nil || idx < -maxIndex || idx > maxIndex {
			return ast.Accessor{}, false
		}
		return ast.IndexAccessor(idx), true
	case body[0] == '@':
		return parseFilter(body[1:])
	case strings.Contains(body, "*"):
		return ast.WildcardAccessor(nil), true
	}
	return ast.Accessor{}, false
}

// parseFilter parses field=value clauses separated by '@'. Each clause is
// split on its first '=', so values may themselves contain '='.
func parseFilter(body string) (ast.Accessor, bool) {
	clauses := strings.Split(body, "@")
	conds := make([]ast.Condition, 0, len(clauses))
	for _, clause := range clauses {
		field, value, found := strings.Cut(clause, "=")
		if !found || field == "" {
			return ast.Accessor{}, false
		}
		conds = append(conds, ast.Condition{Field: field, Value: value})
	}
	return ast.FilterAccessor(conds...), true
}

// isInteger reports whether s is an optionally negative run of ASCII digits.
func isInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
