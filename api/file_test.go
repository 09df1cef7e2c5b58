package api_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/pgn/api"
)

//nolint:paralleltest // Sets environment variables.
func TestGetConfigPath(t *testing.T) {
	tcs := map[string]struct {
		xdg  string
		home string
		want string
	}{
		"xdg set": {
			xdg:  "/custom/config",
			home: "/test/home",
			want: "/custom/config/pgn/config.yaml",
		},
		"xdg empty": {
			home: "/test/home",
			want: "/test/home/.config/pgn/config.yaml",
		},
		"nothing set": {
			want: filepath.Join(os.TempDir(), "pgn", "config.yaml"), //nolint:usetesting // Must match the host.
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tc.xdg)
			t.Setenv("HOME", tc.home)

			assert.Equal(t, tc.want, api.GetConfigPath("config.yaml"))
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: Configuration\n"), 0o600))

	data, err := api.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kind: Configuration\n", string(data))

	_, err = api.ReadFile(dir)
	require.ErrorContains(t, err, "path is a directory")

	_, err = api.ReadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalYAML(t *testing.T) {
	t.Parallel()

	b, err := api.MarshalYAML(struct {
		Kind string `json:"kind"`
	}{Kind: "Configuration"})
	require.NoError(t, err)
	assert.Equal(t, "kind: Configuration\n", string(b))
}

func TestWriteDefaultFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, api.WriteDefaultFile(path, []byte("one"), false, "configuration"))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one", string(got))

	// Existing files are kept without force.
	require.NoError(t, api.WriteDefaultFile(path, []byte("two"), false, "configuration"))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one", string(got))

	// With force, the old file is backed up.
	require.NoError(t, api.WriteDefaultFile(path, []byte("three"), true, "configuration"))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "three", string(got))

	backups, err := filepath.Glob(filepath.Join(dir, "nested", "config.yaml.*.old"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	err = api.WriteDefaultFile(dir, []byte("x"), true, "configuration")
	require.ErrorContains(t, err, "path is a directory")
}
