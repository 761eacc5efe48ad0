package dotted

import (
	"errors"
	"fmt"
	"strings"
)

// Set writes value at path inside root, creating intermediate mappings as
// needed. Keys are split on the delimiter only: accessor syntax is not
// interpreted, so Set(m, "items[0].id", 1) creates a key named "items[0]".
//
// An intermediate key holding nil is replaced by a new mapping. Any other
// non-mapping intermediate value is left untouched and [ErrWriteConflict] is
// returned; writes already made to root are not undone.
func Set(root map[string]any, path string, value any, opts ...Option) error {
	o := newOptions(opts)
	if o.delimiter == "" {
		return fmt.Errorf("%w: empty delimiter", ErrPathParse)
	}
	if root == nil {
		return fmt.Errorf("%w: nil root mapping", ErrWriteConflict)
	}
	return set(root, path, value, o.delimiter, "")
}

// set descends one key per call. walked is the path consumed so far, used in
// error messages.
func set(m map[string]any, path string, value any, delim, walked string) error {
	head, rest, found := strings.Cut(path, delim)
	if !found {
		m[path] = value
		return nil
	}

	if walked == "" {
		walked = head
	} else {
		walked += delim + head
	}

	var child map[string]any
	switch next := m[head].(type) {
	case nil:
		child = make(map[string]any)
		m[head] = child
	case map[string]any:
		child = next
	default:
		return fmt.Errorf("%w: %q holds a %s, not a mapping", ErrWriteConflict, walked, KindOf(next))
	}
	return set(child, rest, value, delim, walked)
}

// Transform builds a new mapping by copying, for every rule of mapper in
// order, the value read at rule.From in source to rule.To in the result.
// A source path that resolves to nothing writes the default from
// [WithDefault]. With [WithClone] the result starts as a deep copy of source,
// otherwise as an empty mapping; source itself is never modified.
//
// Rules are independent: a failing rule is skipped, the remaining rules are
// still applied, and all failures are returned joined.
func Transform(source map[string]any, mapper Mapper, opts ...Option) (map[string]any, error) {
	o := newOptions(opts)

	var out map[string]any
	if o.clone {
		out = Clone(source).(map[string]any)
	} else {
		out = make(map[string]any, len(mapper))
	}

	var errs []error
	for _, rule := range mapper {
		if err := apply(source, out, rule, o); err != nil {
			o.logger.Debug("transform rule failed", "to", rule.To, "from", rule.From, "error", err)
			errs = append(errs, fmt.Errorf("rule %s <- %s: %w", rule.To, rule.From, err))
		}
	}
	return out, errors.Join(errs...)
}

// apply runs a single transform rule.
func apply(source, out map[string]any, rule Rule, o *options) error {
	p, err := parse(rule.From, o)
	if err != nil {
		return err
	}
	v, err := p.get(source, o)
	if err != nil {
		return err
	}
	return set(out, rule.To, Clone(v), o.delimiter, "")
}
