package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikeshare/dashboard/internal/domain"
	"github.com/bikeshare/dashboard/internal/repository/flatfile"
	"github.com/bikeshare/dashboard/internal/repository/memory"
)

func TestCopyColumnsFollowFileLayout(t *testing.T) {
	assert.Equal(t, append(append([]string{}, flatfile.RequiredColumns...), "extras"), copyColumns)
}

// newTestRepository connects to TEST_DATABASE_URL or skips
func newTestRepository(t *testing.T) *PostgresRepository {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewPostgresRepository(pool)
	require.NoError(t, repo.Health(ctx))
	require.NoError(t, repo.EnsureSchema(ctx))
	_, err = pool.Exec(ctx, "TRUNCATE "+TableName)
	require.NoError(t, err)
	return repo
}

func TestImportAndLoad(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)

	start := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	records := memory.SampleRecords(start, 30, 1)
	records[0].Extras = map[string]string{"holiday": "1"}

	n, err := repo.Import(ctx, records)
	require.NoError(t, err)
	assert.EqualValues(t, 30, n)

	// importing overlapping days replaces them
	records[1].Casual, records[1].Total = 0, records[1].Registered
	n, err = repo.Import(ctx, records[:2])
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	ds, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 30, ds.Len())
	assert.Equal(t, []string{"holiday"}, ds.ExtraColumns)
	assert.Equal(t, "1", ds.Records[0].Extras["holiday"])
	assert.Equal(t, 0, ds.Records[1].Casual)
	assert.Equal(t, records[29].Total, ds.Records[29].Total)
	assert.Equal(t, records[29].Season, ds.Records[29].Season)
}
