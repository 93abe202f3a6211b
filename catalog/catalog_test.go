package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/workflowgen/catalog"
	"github.com/byte4ever/workflowgen/templating"
)

// writeTemp creates a file with content and returns its
// path.
func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(
		tb,
		os.WriteFile(pa, []byte(content), 0o600),
	)

	return pa
}

const globals = `windows: windows-2016
linux: ubuntu-16.04
mac: macOS-10.14
py37: "3.7.0"
retries: 5
fail_fast: false
terminate_linux:
upload_unix: &upload_unix |-
  pip install twine
  twine upload dist/*
upload_linux: *upload_unix
upload_mac: *upload_unix
`

func TestLoad_keeps_key_order(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, t.TempDir(), "globals.yaml", globals)

	defs, err := catalog.Load(pa)

	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{
			"windows", "linux", "mac", "py37", "retries",
			"fail_fast", "terminate_linux", "upload_unix",
			"upload_linux", "upload_mac",
		},
		defs.Names(),
	)
}

func TestLoad_scalar_values(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, t.TempDir(), "globals.yaml", globals)

	defs, err := catalog.Load(pa)
	require.NoError(t, err)

	for name, want := range map[string]string{
		"py37":            "3.7.0",
		"retries":         "5",
		"fail_fast":       "false",
		"terminate_linux": "",
	} {
		got, ok := defs.Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestLoad_aliases_share_value(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, t.TempDir(), "globals.yaml", globals)

	defs, err := catalog.Load(pa)
	require.NoError(t, err)

	unix, _ := defs.Lookup("upload_unix")
	mac, _ := defs.Lookup("upload_mac")
	linux, _ := defs.Lookup("upload_linux")

	assert.Equal(t, "pip install twine\ntwine upload dist/*", unix)
	assert.Equal(t, unix, mac)
	assert.Equal(t, unix, linux)
}

func TestLoad_multiple_files_in_order(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeTemp(t, dir, "a.yaml", "b: 1\na: 2\n")
	second := writeTemp(t, dir, "b.yaml", "c: 3\n---\nd: 4\n")

	defs, err := catalog.Load(first, second)

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c", "d"}, defs.Names())
}

func TestLoad_duplicate_across_files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeTemp(t, dir, "a.yaml", "os: linux\n")
	second := writeTemp(t, dir, "b.yaml", "os: windows\n")

	_, err := catalog.Load(first, second)

	require.Error(t, err)

	var de *templating.DuplicateDefinitionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "os", de.Name)
	assert.Equal(t, second, de.Template)
	assert.Contains(t, err.Error(), "loading catalogue")
}

func TestDecode_keeps_scalar_text(t *testing.T) {
	t.Parallel()

	defs := &templating.Definitions{}

	err := catalog.Decode(
		strings.NewReader(
			"mode: 0755\n"+
				"hex: 0x10\n"+
				"octal: 010\n"+
				"big: 1_000\n"+
				"signed: +12\n"+
				"py310: 3.10\n"+
				"flag: True\n"+
				"tagged: !!str 0644\n",
		),
		"inline",
		defs,
	)
	require.NoError(t, err)

	for name, want := range map[string]string{
		"mode":   "0755",
		"hex":    "0x10",
		"octal":  "010",
		"big":    "1_000",
		"signed": "+12",
		"py310":  "3.10",
		"flag":   "True",
		"tagged": "0644",
	} {
		got, ok := defs.Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestDecode_alias_keeps_scalar_text(t *testing.T) {
	t.Parallel()

	defs := &templating.Definitions{}

	err := catalog.Decode(
		strings.NewReader("file_mode: &mode 0755\ndir_mode: *mode\n"),
		"inline",
		defs,
	)
	require.NoError(t, err)

	got, _ := defs.Lookup("dir_mode")
	assert.Equal(t, "0755", got)
}

func TestDecode_rejects_unknown_alias(t *testing.T) {
	t.Parallel()

	err := catalog.Decode(
		strings.NewReader("a: x\n---\nb: *missing\n"), "inline",
		&templating.Definitions{},
	)

	require.Error(t, err)
}

func TestDecode_rejects_non_string_keys(t *testing.T) {
	t.Parallel()

	err := catalog.Decode(
		strings.NewReader("1: one\n"), "inline",
		&templating.Definitions{},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrValueType)
	assert.Contains(t, err.Error(), "quote it")
}

func TestDecode_rejects_nested_values(t *testing.T) {
	t.Parallel()

	err := catalog.Decode(
		strings.NewReader("matrix:\n  os: linux\n"), "inline",
		&templating.Definitions{},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrValueType)
}

func TestDecode_rejects_invalid_names(t *testing.T) {
	t.Parallel()

	err := catalog.Decode(
		strings.NewReader("\"bad name\": x\n"), "inline",
		&templating.Definitions{},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, templating.ErrInvalidName)
}

func TestDecode_empty_input(t *testing.T) {
	t.Parallel()

	defs := &templating.Definitions{}

	require.NoError(t, catalog.Decode(strings.NewReader(""), "empty", defs))
	assert.Zero(t, defs.Len())
}

func TestDecode_malformed_yaml(t *testing.T) {
	t.Parallel()

	err := catalog.Decode(
		strings.NewReader("a: [unclosed\n"), "broken.yaml",
		&templating.Definitions{},
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding catalogue broken.yaml")
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := catalog.Load("/nonexistent/globals.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading catalogue")
}

func TestLoad_feeds_engine(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, t.TempDir(), "globals.yaml", globals)

	defs, err := catalog.Load(pa)
	require.NoError(t, err)

	got, err := templating.ExpandString(
		"deploy.yml",
		"runs-on: <<linux>>\nsteps:\n  - run: |\n      <<upload_linux>>",
		defs,
	)

	require.NoError(t, err)
	assert.Equal(
		t,
		"runs-on: ubuntu-16.04\nsteps:\n  - run: |\n"+
			"      pip install twine\n      twine upload dist/*",
		got,
	)
}
