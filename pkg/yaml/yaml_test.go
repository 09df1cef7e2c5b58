package yaml_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/pgn/pkg/yaml"
)

const testSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "paginator": {
      "type": "object",
      "properties": {
        "pageSize": {"type": "integer", "minimum": 1}
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

func TestDecoder(t *testing.T) {
	t.Parallel()

	var v struct {
		Paginator struct {
			PageSize int `json:"pageSize"`
		} `json:"paginator"`
	}

	err := yaml.NewDecoder(strings.NewReader("paginator:\n  pageSize: 7\n")).Decode(&v)
	require.NoError(t, err)
	assert.Equal(t, 7, v.Paginator.PageSize)

	err = yaml.NewDecoder(strings.NewReader("")).Decode(&v)
	require.ErrorIs(t, err, io.EOF)

	err = yaml.NewDecoder(strings.NewReader("a: [b\n")).Decode(&v)
	require.Error(t, err)

	var yamlErr *yaml.Error
	require.ErrorAs(t, err, &yamlErr)
	assert.NotNil(t, yamlErr.Token)
}

func TestEncoder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	require.NoError(t, enc.Encode(map[string]any{"ui": map[string]any{"keys": []string{"a", "b"}}}))
	require.NoError(t, enc.Close())

	assert.Equal(t, "ui:\n  keys:\n    - a\n    - b\n", buf.String())
}

func TestMarshal_Header(t *testing.T) {
	t.Parallel()

	b, err := yaml.Marshal(map[string]int{"pageSize": 3}, yaml.WithHeader("first", "second"))
	require.NoError(t, err)
	assert.Equal(t, "# first\n# second\npageSize: 3\n", string(b))

	b, err = yaml.Marshal(map[string]int{"pageSize": 3})
	require.NoError(t, err)
	assert.Equal(t, "pageSize: 3\n", string(b))
}

func TestValidator(t *testing.T) {
	t.Parallel()

	v, err := yaml.NewValidator("pgn.json", []byte(testSchema))
	require.NoError(t, err)

	tcs := map[string]struct {
		input   string
		errPath string
	}{
		"valid":         {input: "paginator:\n  pageSize: 3\n"},
		"below minimum": {input: "paginator:\n  pageSize: 0\n", errPath: "$.paginator.pageSize"},
		"unknown field": {input: "paginator:\n  pageSize: 3\n  extra: true\n", errPath: "$.paginator"},
		"wrong type":    {input: "paginator: 5\n", errPath: "$.paginator"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var data any
			require.NoError(t, yaml.NewDecoder(strings.NewReader(tc.input)).Decode(&data))

			err := v.Validate(data)
			if tc.errPath == "" {
				require.NoError(t, err)

				return
			}

			var yamlErr *yaml.Error
			require.ErrorAs(t, err, &yamlErr)
			require.NotNil(t, yamlErr.Path)
			assert.Equal(t, tc.errPath, yamlErr.Path.String())
		})
	}
}

func TestNewValidator_Invalid(t *testing.T) {
	t.Parallel()

	_, err := yaml.NewValidator("bad.json", []byte("{"))
	require.ErrorContains(t, err, "unmarshal schema")

	_, err = yaml.NewValidator("bad.json", []byte(`{"type": 5}`))
	require.ErrorContains(t, err, "compile schema")
}

func TestError(t *testing.T) {
	t.Parallel()

	src := []byte("paginator:\n  pageSize: 0\nserve:\n  addr: x\n")
	path := yaml.NewPathBuilder().Root().Child("paginator").Child("pageSize").Build()

	tcs := map[string]struct {
		err      *yaml.Error
		want     string
		contains []string
	}{
		"plain": {
			err:  yaml.NewError(errors.New("boom")),
			want: "boom",
		},
		"nil error": {
			err:  yaml.NewError(nil),
			want: "",
		},
		"path without source": {
			err:  yaml.NewError(errors.New("too small"), yaml.WithPath(path)),
			want: "error at $.paginator.pageSize: too small",
		},
		"path with source": {
			err:      yaml.NewError(errors.New("too small"), yaml.WithPath(path), yaml.WithSource(src)),
			contains: []string{"[2:3] too small:", "pageSize: 0"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.err.Error()
			if tc.contains == nil {
				assert.Equal(t, tc.want, got)

				return
			}

			for _, s := range tc.contains {
				assert.Contains(t, got, s)
			}
		})
	}
}

func TestErrorWrapper(t *testing.T) {
	t.Parallel()

	src := []byte("a: b\n")
	ew := yaml.NewErrorWrapper(yaml.WithSource(src))

	require.NoError(t, ew.Wrap(nil))

	plain := errors.New("plain")
	assert.Equal(t, plain, ew.Wrap(plain))

	wrapped := ew.Wrap(yaml.NewError(errors.New("bad")))

	var yamlErr *yaml.Error
	require.ErrorAs(t, wrapped, &yamlErr)
	assert.Equal(t, src, yamlErr.Source)
}
