package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-nlu/pkg/registry"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func copyRegistry(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// ==========================
// parse
// ==========================

func TestParseCommand(t *testing.T) {
	out, err := run(t, "", "parse", "Update stock of Sugar to 15")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "edit_stock", got["intent"])
	assert.Equal(t, "en", got["language"])
}

func TestParseCommand_Lines(t *testing.T) {
	out, err := run(t, "Show orders from last week\n\nshow low stock items\n", "parse", "--lines")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"get_orders"`)
	assert.Contains(t, lines[1], `"get_low_stock"`)
}

func TestParseCommand_Errors(t *testing.T) {
	_, err := run(t, "", "parse")
	assert.Error(t, err)

	_, err = run(t, "", "parse", "--now", "15/03/2024", "low stock")
	assert.Error(t, err)

	_, err = run(t, "", "parse", "--catalog", filepath.Join(t.TempDir(), "missing.yaml"), "low stock")
	assert.Error(t, err, "an explicit catalog must load")
}

// ==========================
// registry
// ==========================

func TestRegistryValidate(t *testing.T) {
	out, err := run(t, "", "registry", "validate", "--path", copyRegistry(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 activities")
}

func TestRegistryValidate_Broken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"activities":[{"id":"x","taskType":"x","inputSchema":{"type":"array"}}]}`), 0o600))

	_, err := run(t, "", "registry", "validate", "--path", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "displayName")
	assert.Contains(t, err.Error(), "inputSchema")
}

func TestRegistryUpdate(t *testing.T) {
	path := copyRegistry(t)

	_, err := run(t, "", "registry", "update", "parse-command", "--path", path, "--field", "retries", "--value", "2")
	require.NoError(t, err)

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	a, ok := reg.FindByTaskType("parse-command")
	require.True(t, ok)
	assert.Equal(t, 2, a.Retries)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown activity", []string{"missing", "--field", "status", "--value", "done"}},
		{"unknown field", []string{"parse-command", "--field", "owner", "--value", "x"}},
		{"bad retries", []string{"parse-command", "--field", "retries", "--value", "-1"}},
		{"bad timeout", []string{"parse-command", "--field", "timeout", "--value", "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"registry", "update", "--path", path}, tt.args...)
			_, err := run(t, "", args...)
			assert.Error(t, err)
		})
	}
}
