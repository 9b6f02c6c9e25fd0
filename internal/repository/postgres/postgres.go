package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bikeshare/dashboard/internal/domain"
)

// PostgresRepository implements domain.RentalSource
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Describe names the source
func (r *PostgresRepository) Describe() string {
	cfg := r.pool.Config().ConnConfig
	return fmt.Sprintf("postgres:%s/%s", cfg.Host, cfg.Database)
}

// EnsureSchema creates the rentals table when missing
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// Load retrieves every day ordered by date
func (r *PostgresRepository) Load(ctx context.Context) (*domain.Dataset, error) {
	query := `
		SELECT dteday, season, weekday, temp, atemp, hum, windspeed,
			   casual, registered, cnt, extras
		FROM daily_rentals
		ORDER BY dteday ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query rentals: %w", err)
	}
	defer rows.Close()

	var (
		results   []domain.DailyRentalRecord
		extraCols = map[string]struct{}{}
	)
	for rows.Next() {
		var (
			rec    domain.DailyRentalRecord
			season int
		)
		err := rows.Scan(
			&rec.Date, &season, &rec.Weekday,
			&rec.Weather.Temp, &rec.Weather.FeelsLike, &rec.Weather.Humidity, &rec.Weather.Windspeed,
			&rec.Casual, &rec.Registered, &rec.Total, &rec.Extras,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan rental row: %w", err)
		}
		rec.Season = domain.SeasonFromCode(season)
		for col := range rec.Extras {
			extraCols[col] = struct{}{}
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read rentals: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("postgres: %s: %w", TableName, domain.ErrEmptyDataset)
	}

	extras := make([]string, 0, len(extraCols))
	for col := range extraCols {
		extras = append(extras, col)
	}
	sort.Strings(extras)

	return domain.NewDataset(results, r.Describe(), extras), nil
}

// Import replaces the stored days with records in one transaction
func (r *PostgresRepository) Import(ctx context.Context, records []domain.DailyRentalRecord) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	dates := make([]time.Time, len(records))
	for i, rec := range records {
		dates[i] = domain.Day(rec.Date)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM daily_rentals WHERE dteday = ANY($1)`, dates); err != nil {
		return 0, fmt.Errorf("postgres: failed to clear imported days: %w", err)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{TableName}, copyColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]
			return []any{
				domain.Day(rec.Date), rec.Season.Code(), rec.Weekday,
				rec.Weather.Temp, rec.Weather.FeelsLike, rec.Weather.Humidity, rec.Weather.Windspeed,
				rec.Casual, rec.Registered, rec.Total, rec.Extras,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to copy rentals: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit import: %w", err)
	}
	return n, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
