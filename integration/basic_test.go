//go:build basic

// Package integration contains integration tests for grantscope.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestVersionCommand verifies the binary builds and reports its version.
func TestVersionCommand(t *testing.T) {
	require.NoError(t, runGrantscopeCommand(t, "version"))
}

// TestStoreLifecycleWithSQLite drives the store subcommands against a
// temporary SQLite file, the default backend.
func TestStoreLifecycleWithSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "grantscope.db")

	_ = os.Setenv("GRANTSCOPE_STORE_BACKEND", "sqlite")
	_ = os.Setenv("GRANTSCOPE_STORE_DB_CONNECT", dbPath)
	defer func() { _ = os.Unsetenv("GRANTSCOPE_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("GRANTSCOPE_STORE_DB_CONNECT") }()

	require.NoError(t, runGrantscopeCommand(t, "store", "migrate"))
	require.NoError(t, runGrantscopeCommand(t, "store", "status"))
	require.NoError(t, runGrantscopeCommand(t, "store", "clear"))
}
