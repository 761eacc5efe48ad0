package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentable/dotted"
)

const productJSON = `{
  "name": "Widget",
  "price": {"amount": 9.5, "currency": "USD"},
  "variants": [
    {"sku": "w-1", "color": "Red"},
    {"sku": "w-2", "color": "blue"}
  ]
}`

// run executes the command tree with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestGet(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "nested key", args: []string{"get", "price.currency"}, want: "\"USD\"\n"},
		{name: "index", args: []string{"get", "variants[-1].sku"}, want: "\"w-2\"\n"},
		{name: "filter", args: []string{"get", "variants[@color=blue].sku"}, want: "\"w-2\"\n"},
		{name: "normalized filter", args: []string{"get", "-n", "variants[@color=red].sku"}, want: "\"w-1\"\n"},
		{name: "wildcard", args: []string{"get", "variants[*].sku"}, want: "[\n  \"w-1\",\n  \"w-2\"\n]\n"},
		{name: "missing", args: []string{"get", "nope"}, want: "null\n"},
		{name: "missing with default", args: []string{"get", "nope", "--default", "0"}, want: "0\n"},
		{name: "string default", args: []string{"get", "nope", "--default", "none"}, want: "\"none\"\n"},
		{name: "yaml output", args: []string{"get", "price", "-o", "yaml"}, want: "amount: 9.5\ncurrency: USD\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, productJSON, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("type mismatch", func(t *testing.T) {
		_, err := run(t, productJSON, "get", "name[0]")
		assert.ErrorIs(t, err, dotted.ErrTypeMismatch)
	})

	t.Run("dump output", func(t *testing.T) {
		got, err := run(t, productJSON, "get", "price", "-o", "dump")
		require.NoError(t, err)
		assert.Contains(t, got, `"currency"`)
	})

	t.Run("unknown output", func(t *testing.T) {
		_, err := run(t, productJSON, "get", "name", "-o", "toml")
		assert.ErrorContains(t, err, "unknown format")
	})
}

func TestReadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("meta:\n  title: Hello\n"), 0o644))

	got, err := run(t, "", "get", "meta.title", path)
	require.NoError(t, err)
	assert.Equal(t, "\"Hello\"\n", got)

	got, err = run(t, "meta:\n  title: Piped\n", "get", "meta.title", "-i", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "\"Piped\"\n", got)

	_, err = run(t, "", "get", "a", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	got, err := run(t, `{"a":{"b":1}}`, "set", "a.c", `{"d":true}`)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": {\n    \"b\": 1,\n    \"c\": {\n      \"d\": true\n    }\n  }\n}\n", got)

	got, err = run(t, `{}`, "set", "x/y", "hello", "-d", "/")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"x\": {\n    \"y\": \"hello\"\n  }\n}\n", got)

	_, err = run(t, `{"a":1}`, "set", "a.b", "2")
	assert.ErrorIs(t, err, dotted.ErrWriteConflict)

	_, err = run(t, `[1,2]`, "set", "a", "2")
	assert.ErrorContains(t, err, "document root is a sequence")
}

func TestTransform(t *testing.T) {
	got, err := run(t, productJSON,
		"transform", "-o", "yaml",
		"--rule", "title=name",
		"--rule", "cost.value=price.amount",
		"--rule", "skus=variants[*].sku",
	)
	require.NoError(t, err)
	assert.Equal(t, "cost:\n  value: 9.5\nskus:\n  - w-1\n  - w-2\ntitle: Widget\n", got)

	got, err = run(t, `{"a":1,"b":2}`, "transform", "--clone", "--rule", "c=a")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2,\n  \"c\": 1\n}\n", got)

	t.Run("partial failure still prints", func(t *testing.T) {
		got, err := run(t, productJSON, "transform", "--rule", "a=name[0]", "--rule", "b=name")
		assert.ErrorIs(t, err, dotted.ErrTypeMismatch)
		assert.Equal(t, "{\n  \"b\": \"Widget\"\n}\n", got)
	})

	t.Run("bad rule", func(t *testing.T) {
		_, err := run(t, productJSON, "transform", "--rule", "nodelim")
		assert.ErrorContains(t, err, "want destination=source")
	})

	t.Run("rule required", func(t *testing.T) {
		_, err := run(t, productJSON, "transform")
		assert.Error(t, err)
	})
}

func TestFlatten(t *testing.T) {
	tree := `{"name":"root","kids":[{"name":"a","kids":[{"name":"a1"}]},{"name":"b"}]}`
	got, err := run(t, tree, "flatten", "--children-key", "kids", "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "- name: a1\n- name: a\n- name: b\n- name: root\n", got)

	_, err = run(t, `{"children":"x"}`, "flatten")
	assert.ErrorIs(t, err, dotted.ErrTypeMismatch)
}

func TestFind(t *testing.T) {
	got, err := run(t, productJSON, "find", "currency")
	require.NoError(t, err)
	assert.Equal(t, "\"USD\"\n", got)

	_, err = run(t, productJSON, "find", "zzz")
	assert.ErrorContains(t, err, `key "zzz" not found`)
}

func TestItems(t *testing.T) {
	doc := `{"meta":{"title":"t","author":{"name":"ann"}},"body":"x"}`

	got, err := run(t, doc, "items", "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "- path: body\n  value: x\n- path: meta.author.name\n  value: ann\n- path: meta.title\n  value: t\n", got)

	got, err = run(t, doc, "items", "--match", "meta.**", "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "- path: meta.author.name\n  value: ann\n- path: meta.title\n  value: t\n", got)
}

func TestParseRules(t *testing.T) {
	m, err := parseRules([]string{"a=b", "c.d=e[0]=x"})
	require.NoError(t, err)
	assert.Equal(t, dotted.Mapper{{To: "a", From: "b"}, {To: "c.d", From: "e[0]=x"}}, m)

	for _, bad := range []string{"", "=b", "a=", "ab"} {
		_, err := parseRules([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, 1.0, parseValue("1"))
	assert.Equal(t, true, parseValue("true"))
	assert.Nil(t, parseValue("null"))
	assert.Equal(t, []any{"a"}, parseValue(`["a"]`))
	assert.Equal(t, "hello", parseValue("hello"))
}
