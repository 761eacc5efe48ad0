// Package document reads and writes the trees handled by the dotted command.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownFormat is returned for a format name with no codec.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrDecodeUnsupported is returned when decoding from an output-only format.
	ErrDecodeUnsupported = errors.New("format cannot be decoded")
)

// Codec defines how to decode and encode a specific format.
type Codec interface {
	// Decode parses data into a tree of map[string]any, []any and scalars.
	Decode(data []byte) (any, error)
	// Encode renders v.
	Encode(v any) ([]byte, error)
}

// Codecs returns the standard set of codecs keyed by format name.
func Codecs() map[string]Codec {
	return map[string]Codec{
		"json": JSONCodec{},
		"yaml": YAMLCodec{},
		"dump": DumpCodec{},
	}
}

// Formats returns the supported format names in sorted order.
func Formats() []string {
	names := make([]string, 0, 3)
	for name := range Codecs() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the codec for format.
func Lookup(format string) (Codec, error) {
	c, ok := Codecs()[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
	return c, nil
}

// FormatForPath guesses a format from a file extension, defaulting to json.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// Read decodes everything from r using format.
func Read(r io.Reader, format string) (any, error) {
	c, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return c.Decode(data)
}

// Write encodes v to w using format.
func Write(w io.Writer, v any, format string) error {
	c, err := Lookup(format)
	if err != nil {
		return err
	}
	data, err := c.Encode(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// --- JSON Codec ---

// JSONCodec handles JSON using github.com/go-json-experiment/json.
type JSONCodec struct{}

func (JSONCodec) Decode(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return v, nil
}

func (JSONCodec) Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v, json.Deterministic(true), jsontext.WithIndent("  "), jsontext.SpaceAfterColon(true))
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// --- YAML Codec ---

// YAMLCodec handles YAML using gopkg.in/yaml.v3.
type YAMLCodec struct{}

func (YAMLCodec) Decode(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return stringKeys(v), nil
}

func (YAMLCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stringKeys converts mappings with non-string keys, which YAML allows, into
// map[string]any so path lookups can address them.
func stringKeys(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			x[k] = stringKeys(val)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case []any:
		for i, val := range x {
			x[i] = stringKeys(val)
		}
		return x
	default:
		return v
	}
}

// --- Dump Codec ---

// DumpCodec renders a Go-syntax view of a tree with go-spew. It is meant for
// debugging output and cannot be decoded.
type DumpCodec struct{}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func (DumpCodec) Decode([]byte) (any, error) {
	return nil, fmt.Errorf("dump: %w", ErrDecodeUnsupported)
}

func (DumpCodec) Encode(v any) ([]byte, error) {
	return []byte(dumpConfig.Sdump(v)), nil
}
