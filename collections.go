package dotted

import (
	"cmp"
	"reflect"
	"slices"
	"strings"

	"github.com/agentable/dotted/internal/ast"
)

// Invert returns a mapping from the string form of every value in m to its
// key. When two keys share a value the one sorting last wins.
func Invert(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for _, k := range sortedKeys(m) {
		out[ast.Stringify(m[k])] = k
	}
	return out
}

// Ordered returns the entries of m as items sorted by key, or by value when
// byValue is set, descending when reverse is set. Entries with equal values
// keep key order in both directions. Numbers compare numerically and sort
// before other values, which compare by their string form.
func Ordered(m map[string]any, byValue, reverse bool) []Item {
	items := make([]Item, 0, len(m))
	for _, k := range sortedKeys(m) {
		items = append(items, Item{Path: k, Value: m[k]})
	}
	if !byValue {
		if reverse {
			slices.Reverse(items)
		}
		return items
	}

	slices.SortStableFunc(items, func(a, b Item) int {
		c := compareValues(a.Value, b.Value)
		if reverse {
			return -c
		}
		return c
	})
	return items
}

func compareValues(a, b any) int {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	switch {
	case aNum && bNum:
		return cmp.Compare(fa, fb)
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(ast.Stringify(a), ast.Stringify(b))
}

// Without returns a shallow copy of m without the given keys. Keys not in m
// are ignored.
func Without(m map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// FindItem returns the first mapping in items whose key field equals value.
// Elements that are not mappings or lack the field are skipped. Numbers of
// different Go types compare by value, so 3 and 3.0 are equal.
func FindItem(items []any, key string, value any) (map[string]any, bool) {
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		v, ok := m[key]
		if ok && equal(v, value) {
			return m, true
		}
	}
	return nil, false
}

// IndexBy turns a list of mappings into a mapping keyed by the string form
// of each element's keyField. Elements without keyField are skipped.
//
// With a non-empty valueField the indexed value is the element's valueField.
// Otherwise it is the element itself when includeKey is set, or a copy
// without keyField when it is not.
func IndexBy(items []any, keyField, valueField string, includeKey bool) map[string]any {
	out := make(map[string]any, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		k, ok := m[keyField]
		if !ok {
			continue
		}
		switch {
		case valueField != "":
			out[ast.Stringify(k)] = m[valueField]
		case includeKey:
			out[ast.Stringify(k)] = m
		default:
			out[ast.Stringify(k)] = Without(m, keyField)
		}
	}
	return out
}

// Combine merges ms into one mapping, passing the values found under each key
// to fn. With a nil def only keys present in every map are combined; with a
// non-nil def every key is combined and def stands in for missing values.
// A nil fn sums numeric values with [Sum].
func Combine(ms []map[string]any, fn func([]any) any, def any) map[string]any {
	if fn == nil {
		fn = Sum
	}
	out := make(map[string]any)
	if len(ms) == 0 {
		return out
	}

	keys := make(map[string]int)
	for _, m := range ms {
		for k := range m {
			keys[k]++
		}
	}

	for k, n := range keys {
		if def == nil && n != len(ms) {
			continue
		}
		values := make([]any, len(ms))
		for i, m := range ms {
			v, ok := m[k]
			if !ok {
				v = def
			}
			values[i] = v
		}
		out[k] = fn(values)
	}
	return out
}

// Sum adds numeric values as float64. Non-numeric values are ignored.
func Sum(values []any) any {
	var total float64
	for _, v := range values {
		if f, ok := toFloat(v); ok {
			total += f
		}
	}
	return total
}

// Apply returns a copy of v with fn applied to every scalar. Mappings and
// sequences are copied, never modified.
func Apply(v any, fn func(any) any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Apply(val, fn)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Apply(val, fn)
		}
		return out
	default:
		return fn(v)
	}
}

// equal compares two decoded values, treating all numeric types alike.
func equal(a, b any) bool {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum && bNum {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
