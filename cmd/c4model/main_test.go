package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const definition = `
name: banking
containers:
  - alias: web-app
    label: Web Application
    type: web_app
    technology: TS
    description: Front end
`

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("C4MODEL_CONFIG", filepath.Join(dir, "absent.yaml"))
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	var out bytes.Buffer
	root := newRootCmd(&app{})
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--db", filepath.Join(dir, "test.db"), "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCLIImportInstanceShow(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "banking.yaml")
	require.NoError(t, os.WriteFile(def, []byte(definition), 0644))

	out, err := runCLI(t, dir, "validate", def)
	require.NoError(t, err)
	assert.Contains(t, out, "Workspace: banking")

	out, err = runCLI(t, dir, "import", def)
	require.NoError(t, err)
	assert.Contains(t, out, "imported banking")

	out, err = runCLI(t, dir, "instance", "banking", "web-app", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "created web-app:1 (Web Application, web_app)")

	out, err = runCLI(t, dir, "instance", "banking", "web-app:1")
	require.NoError(t, err)
	assert.Contains(t, out, "existing web-app:1")

	out, err = runCLI(t, dir, "show", "banking", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "web-app:1")
	assert.Contains(t, out, "technology: TS")

	out, err = runCLI(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "banking")

	_, err = runCLI(t, dir, "delete", "banking")
	require.NoError(t, err)
	_, err = runCLI(t, dir, "show", "banking")
	assert.Error(t, err)
}

func TestCLIValidateReportsErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("containers:\n  - alias: ''\n"), 0644))

	out, err := runCLI(t, dir, "validate", bad)
	assert.Error(t, err)
	assert.Contains(t, out, "invalid identity")
}

func TestSplitInstanceKey(t *testing.T) {
	tests := []struct {
		key   string
		alias string
		name  string
		ok    bool
	}{
		{"web-app:1", "web-app", "1", true},
		{"web-app:1:blue", "web-app:1", "blue", true},
		{"web-app", "", "", false},
		{":1", "", "", false},
		{"web-app:", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			alias, name, ok := splitInstanceKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.alias, alias)
			assert.Equal(t, tt.name, name)
		})
	}
}
