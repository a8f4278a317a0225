package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCommand(&app{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestMigrateThenPrune(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "agri.db"))
	t.Setenv("LOG_LEVEL", "error")

	_, err := execute(t, "migrate")
	require.NoError(t, err)
	_, err = execute(t, "migrate", "--verify")
	require.NoError(t, err)

	out, err := execute(t, "prune-logs", "--older-than", "24h")
	require.NoError(t, err)
	assert.Equal(t, "deleted 0 system logs\n", out)
}

func TestSchedulesUsesConfiguredZone(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "agri.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("TZ", "Asia/Bangkok")

	_, err := execute(t, "migrate")
	require.NoError(t, err)
	out, err := execute(t, "schedules", "--field", "5b0f6a4e-8f53-4d6e-9a43-6a1d2f0b7c11", "--from", "2024-08-01", "--to", "2024-08-31")
	require.NoError(t, err)
	assert.Equal(t, "0 schedules\n", out)

	_, err = execute(t, "schedules", "--field", "5b0f6a4e-8f53-4d6e-9a43-6a1d2f0b7c11", "--from", "08/01/2024")
	assert.ErrorContains(t, err, "from")
}

func TestImportCropsRequiresField(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "agri.db"))
	_, err := execute(t, "import-crops", "--field", "nope", "sheet.csv")
	assert.ErrorContains(t, err, "--field")
}
