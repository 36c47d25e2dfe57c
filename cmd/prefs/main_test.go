package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runPrefs executes the command tree with the given args and returns its
// stdout. The HOME override keeps the implicit config lookup hermetic.
func runPrefs(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestSetGetRoundTrip verifies the basic CLI workflow against a temp dir.
func TestSetGetRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	_, err := runPrefs(t, "set", "--dir", dir, "-n", "profile", "-t", "int32", "level", "5")
	require.NoError(t, err)

	out, err := runPrefs(t, "get", "--dir", dir, "-n", "profile", "-t", "int32", "level")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

// TestGetDefault verifies the missing-key default path.
func TestGetDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	out, err := runPrefs(t, "get", "--dir", dir, "-t", "int32", "-d", "42", "missing")
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)

	// Without an explicit default the type's zero is printed.
	out, err = runPrefs(t, "get", "--dir", dir, "-t", "bool", "missing")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

// TestSeparatorSafePayload verifies that values containing the sequence
// separator and backslashes survive the full CLI round trip.
func TestSeparatorSafePayload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	_, err := runPrefs(t, "set", "--dir", dir, "name", `A,B\C`)
	require.NoError(t, err)

	out, err := runPrefs(t, "get", "--dir", dir, "name")
	require.NoError(t, err)
	assert.Equal(t, "A,B\\C\n", out)
}

// TestHasDelKeys verifies presence, deletion and listing.
func TestHasDelKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	_, err := runPrefs(t, "set", "--dir", dir, "alpha", "1")
	require.NoError(t, err)
	_, err = runPrefs(t, "set", "--dir", dir, "beta", "2")
	require.NoError(t, err)

	out, err := runPrefs(t, "has", "--dir", dir, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runPrefs(t, "keys", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\n", out)

	_, err = runPrefs(t, "del", "--dir", dir, "alpha")
	require.NoError(t, err)

	out, err = runPrefs(t, "has", "--dir", dir, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

// TestClear verifies that clear persists an empty namespace.
func TestClear(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	_, err := runPrefs(t, "set", "--dir", dir, "k", "v")
	require.NoError(t, err)

	_, err = runPrefs(t, "clear", "--dir", dir)
	require.NoError(t, err)

	out, err := runPrefs(t, "keys", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

// TestTypeErrors verifies CLI-level validation failures.
func TestTypeErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	_, err := runPrefs(t, "set", "--dir", dir, "-t", "int32", "k", "not-a-number")
	assert.Error(t, err)

	_, err = runPrefs(t, "set", "--dir", dir, "-t", "quaternion", "k", "1")
	assert.Error(t, err)

	// Stored as string, read as int32: the store refuses to coerce.
	_, err = runPrefs(t, "set", "--dir", dir, "k", "text")
	require.NoError(t, err)
	_, err = runPrefs(t, "get", "--dir", dir, "-t", "int32", "k")
	assert.Error(t, err)
}

// TestConfigFile verifies that a YAML config supplies defaults that
// explicitly set flags override.
func TestConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	cfgPath := filepath.Join(t.TempDir(), "prefstore.yaml")
	cfg := "dir: " + dir + "\nnamespace: fromconfig\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	_, err := runPrefs(t, "set", "--config", cfgPath, "k", "v")
	require.NoError(t, err)

	// The value landed in the config-selected namespace.
	out, err := runPrefs(t, "get", "--dir", dir, "-n", "fromconfig", "k")
	require.NoError(t, err)
	assert.Equal(t, "v\n", out)

	// An explicit --namespace beats the config file.
	out, err = runPrefs(t, "has", "--config", cfgPath, "-n", "other", "k")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	// A config path that does not exist is an error when explicit.
	_, err = runPrefs(t, "keys", "--config", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
