package dotted

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Flatten collects node and all of its descendants under the children key
// ([WithChildrenKey], default "children") into one list. Descendants come
// before the node that contained them, and every returned node has had its
// children key deleted: node is modified in place, Clone it first to keep it.
//
// A children value that is not a sequence of mappings fails with
// [ErrTypeMismatch]; nodes visited before the failure stay modified.
func Flatten(node map[string]any, opts ...Option) ([]map[string]any, error) {
	o := newOptions(opts)
	var flat []map[string]any
	if err := flatten(node, o.childrenKey, &flat); err != nil {
		return nil, err
	}
	return flat, nil
}

func flatten(node map[string]any, key string, flat *[]map[string]any) error {
	if children, ok := node[key]; ok {
		seq, isSeq := sequence(children)
		if !isSeq && children != nil {
			return fmt.Errorf("%w: %q holds a %s, not a sequence", ErrTypeMismatch, key, KindOf(children))
		}
		for i, c := range seq {
			child, ok := c.(map[string]any)
			if !ok {
				return fmt.Errorf("%w: %s[%d] is a %s, not a mapping", ErrTypeMismatch, key, i, KindOf(c))
			}
			if err := flatten(child, key, flat); err != nil {
				return err
			}
		}
		delete(node, key)
	}
	*flat = append(*flat, node)
	return nil
}

// ValueForKey searches node depth-first for an entry named key and returns
// its value. Mapping entries are visited in key order and sequence elements
// in index order.
//
// Only an entry of node itself is returned regardless of its value. A match
// found deeper counts only when [Truthy]: a nested {"key": 0} is passed over
// in favor of a later truthy match, and if no truthy match exists the search
// reports nothing.
func ValueForKey(node any, key string) (any, bool) {
	switch n := node.(type) {
	case map[string]any:
		for _, k := range sortedKeys(n) {
			v := n[k]
			if k == key {
				return v, true
			}
			if found, ok := ValueForKey(v, key); ok && Truthy(found) {
				return found, true
			}
		}
	case []any:
		for _, el := range n {
			if found, ok := ValueForKey(el, key); ok && Truthy(found) {
				return found, true
			}
		}
	case []map[string]any:
		for _, el := range n {
			if found, ok := ValueForKey(el, key); ok && Truthy(found) {
				return found, true
			}
		}
	}
	return nil, false
}

// DeepItems lists every non-mapping value reachable from node through nested
// mappings, paired with its path joined by the delimiter. Entries are listed
// depth-first in key order. Sequences are leaves; empty nested mappings
// contribute nothing.
func DeepItems(node map[string]any, opts ...Option) []Item {
	o := newOptions(opts)
	return appendItems(nil, node, "", o.delimiter)
}

// appendItems appends the items below node. prefix, when non-empty, already
// ends with the delimiter.
func appendItems(out []Item, node map[string]any, prefix, delim string) []Item {
	for _, k := range sortedKeys(node) {
		path := prefix + k
		if child, ok := node[k].(map[string]any); ok {
			out = appendItems(out, child, path+delim, delim)
			continue
		}
		out = append(out, Item{Path: path, Value: node[k]})
	}
	return out
}

// MatchItems returns the items whose path matches the glob pattern. The
// pattern is written with the same delimiter as the paths; "*" matches within
// one component and "**" across any number of components. Returns
// [ErrPathParse] for an invalid pattern.
func MatchItems(items []Item, pattern string, opts ...Option) ([]Item, error) {
	o := newOptions(opts)
	if o.delimiter == "" {
		return nil, fmt.Errorf("%w: empty delimiter", ErrPathParse)
	}

	glob := toSlashes(pattern, o.delimiter)
	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("%w: invalid pattern %q", ErrPathParse, pattern)
	}

	var out []Item
	for _, it := range items {
		ok, err := doublestar.Match(glob, toSlashes(it.Path, o.delimiter))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPathParse, err)
		}
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}

// slashStandIn replaces '/' inside a component so doublestar does not read
// it as a separator.
const slashStandIn = "\x00"

// toSlashes rewrites a delimited path into doublestar's '/' separated form.
// Patterns and item paths must both pass through it.
func toSlashes(path, delim string) string {
	parts := strings.Split(path, delim)
	for i, part := range parts {
		parts[i] = strings.ReplaceAll(part, "/", slashStandIn)
	}
	return strings.Join(parts, "/")
}
