package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikeshare/dashboard/internal/repository/flatfile"
)

func TestSampleCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "day.csv")

	cmd := newSampleCmd()
	cmd.SetArgs([]string{"--out", out, "--start", "2012-01-01", "--days", "45", "--seed", "3"})
	require.NoError(t, cmd.Execute())

	ds, err := flatfile.NewRepository(out, "", "").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 45, ds.Len())

	bounds, ok := ds.Bounds()
	require.True(t, ok)
	assert.Equal(t, "2012-01-01..2012-02-14", bounds.String())
	for _, r := range ds.Records {
		assert.True(t, r.Consistent())
	}
}

func TestSampleCommandRejectsBadInput(t *testing.T) {
	for _, args := range [][]string{
		{"--days", "0"},
		{"--start", "someday"},
	} {
		cmd := newSampleCmd()
		cmd.SetArgs(append(args, "--out", filepath.Join(t.TempDir(), "day.csv")))
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		assert.Error(t, cmd.Execute(), args)
	}
}

func TestImportCommandRequiresDatabase(t *testing.T) {
	cmd := newImportCmd()
	cmd.SetArgs([]string{"--database-url", "", "--file", "missing.csv"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
