package ast

import (
	"fmt"
	"strconv"
	"time"
)

// Match reports whether candidate is a mapping whose fields satisfy every
// condition of a. Comparison is on string forms, so 3, 3.0 and "3" are equal.
// A missing field or a non-mapping candidate never matches.
func (a *Accessor) Match(candidate any, norm func(string) string) bool {
	m, ok := candidate.(map[string]any)
	if !ok {
		return false
	}
	for _, c := range a.Conditions {
		v, ok := m[c.Field]
		if !ok {
			return false
		}
		got, want := Stringify(v), c.Value
		if norm != nil {
			got, want = norm(got), norm(want)
		}
		if got != want {
			return false
		}
	}
	return true
}

// Stringify returns the comparison form of a scalar. Floats with no
// fractional part print without a decimal point so decoded JSON numbers
// compare equal to integer literals in a path. Booleans and nil use their
// JSON spelling: a filter matches them with "true", "false" and "null", not
// "True" or "None".
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
