package dotted

import (
	"errors"
	"maps"
	"slices"
	"strconv"
)

// Sentinel errors.
var (
	// ErrPathParse is returned when a path or pattern cannot be compiled.
	ErrPathParse = errors.New("dotted: parse error")
	// ErrTypeMismatch is returned when a path or tree has a different shape
	// than an operation requires, e.g. an index accessor applied to a string.
	ErrTypeMismatch = errors.New("dotted: type mismatch")
	// ErrWriteConflict is returned when Set would have to descend through a
	// value that is not a mapping.
	ErrWriteConflict = errors.New("dotted: write conflict")
	// ErrUnmarshal is returned when JSON unmarshaling fails in GetJSON.
	ErrUnmarshal = errors.New("dotted: unmarshal error")
)

// Kind classifies a tree node.
type Kind uint8

const (
	// Absent is the nil node: a missing value or JSON null.
	Absent Kind = iota
	// Scalar is any leaf value: string, number, bool, time or opaque value.
	Scalar
	// Mapping is a map[string]any.
	Mapping
	// Sequence is a []any (or []map[string]any).
	Sequence
)

var kindNames = [...]string{
	Absent:   "absent",
	Scalar:   "scalar",
	Mapping:  "mapping",
	Sequence: "sequence",
}

// String returns the lower-case name of k.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// KindOf returns the [Kind] of v. Trees are expected to hold the shapes
// produced by JSON and YAML decoders.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return Absent
	case map[string]any:
		return Mapping
	case []any, []map[string]any:
		return Sequence
	default:
		return Scalar
	}
}

// sequence returns v as a []any when v is a sequence node.
func sequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

// Item is one leaf of a tree of mappings together with its delimited path.
type Item struct {
	Path  string
	Value any
}

// Rule copies the value at source path From to destination path To.
type Rule struct {
	To   string
	From string
}

// Mapper is an ordered list of transform rules. Rules are applied in order.
type Mapper []Rule

// MapperFromMap builds a [Mapper] from m, whose keys are destination paths
// and whose values are source paths. Rules are ordered by destination path.
func MapperFromMap(m map[string]string) Mapper {
	mapper := make(Mapper, 0, len(m))
	for _, to := range slices.Sorted(maps.Keys(m)) {
		mapper = append(mapper, Rule{To: to, From: m[to]})
	}
	return mapper
}

// Truthy reports whether v counts as a found value for [ValueForKey]:
// nil, false, zero numbers, empty strings and empty collections do not.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int8:
		return x != 0
	case int16:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case uint:
		return x != 0
	case uint8:
		return x != 0
	case uint16:
		return x != 0
	case uint32:
		return x != 0
	case uint64:
		return x != 0
	case float32:
		return x != 0
	case float64:
		return x != 0
	case map[string]any:
		return len(x) > 0
	case []any:
		return len(x) > 0
	case []map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

// Clone returns a deep copy of the mappings and sequences in v. Scalars are
// shared, they are immutable for the purposes of this package.
func Clone(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Clone(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Clone(val)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(x))
		for i, m := range x {
			out[i] = Clone(m).(map[string]any)
		}
		return out
	default:
		return v
	}
}

// sortedKeys returns the keys of m in ascending order so traversals over
// Go maps are deterministic.
func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
