package compliance

import (
	_ "embed"
	"testing"

	"github.com/agentable/dotted"
	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/require"
)

// The cases pin down read semantics that callers rely on: absence versus
// falsy values, type-insensitive filters and wildcard projection. Add a case
// here whenever a read behavior changes on purpose.

//go:embed testdata/cases.json
var casesJSON []byte

// caseFile represents the structure of the cases file.
type caseFile struct {
	Description string     `json:"description"`
	Tests       []testCase `json:"tests"`
}

// testCase represents a single read case.
type testCase struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Document     any    `json:"document"`
	Result       any    `json:"result"`
	Default      any    `json:"default"`
	Delimiter    string `json:"delimiter"`
	Normalize    bool   `json:"normalize"`
	TypeMismatch bool   `json:"type_mismatch"`
}

func (tc *testCase) options() []dotted.Option {
	opts := []dotted.Option{dotted.WithDefault(tc.Default)}
	if tc.Delimiter != "" {
		opts = append(opts, dotted.WithDelimiter(tc.Delimiter))
	}
	if tc.Normalize {
		opts = append(opts, dotted.WithNormalize())
	}
	return opts
}

func TestCompliance(t *testing.T) {
	var suite caseFile
	require.NoError(t, json.Unmarshal(casesJSON, &suite))
	require.NotEmpty(t, suite.Tests)

	for _, tc := range suite.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := dotted.Get(tc.Document, tc.Path, tc.options()...)
			if tc.TypeMismatch {
				require.ErrorIs(t, err, dotted.ErrTypeMismatch)
				require.Equal(t, tc.Default, dotted.Value(tc.Document, tc.Path, tc.options()...))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.Result, got)
		})
	}
}

func TestComplianceCompiled(t *testing.T) {
	var suite caseFile
	require.NoError(t, json.Unmarshal(casesJSON, &suite))

	// A compiled path gives the same answers as the one-shot functions.
	for _, tc := range suite.Tests {
		if tc.TypeMismatch {
			continue
		}
		t.Run(tc.Name, func(t *testing.T) {
			opts := tc.options()
			path, err := dotted.Parse(tc.Path, opts...)
			require.NoError(t, err)

			got, err := path.Get(tc.Document, opts...)
			require.NoError(t, err)
			require.Equal(t, tc.Result, got)
		})
	}
}
