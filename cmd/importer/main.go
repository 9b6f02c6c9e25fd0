package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bikeshare/dashboard/internal/domain"
	"github.com/bikeshare/dashboard/internal/logging"
	"github.com/bikeshare/dashboard/internal/repository/flatfile"
	"github.com/bikeshare/dashboard/internal/repository/memory"
	"github.com/bikeshare/dashboard/internal/repository/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	logging.New(os.Stderr, os.Getenv("LOG_LEVEL"), "text")

	rootCmd := &cobra.Command{
		Use:   "importer",
		Short: "Load daily rental datasets into PostgreSQL or generate sample data",
	}
	rootCmd.AddCommand(newImportCmd(), newSampleCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newImportCmd() *cobra.Command {
	var (
		file        string
		sheet       string
		databaseURL string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a CSV or XLSX dataset into the daily_rentals table",
		Long: `Copy a CSV or XLSX dataset into the daily_rentals table, replacing days already stored.

Example: importer import --file data/day.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				return fmt.Errorf("DATABASE_URL or --database-url is required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			ds, err := flatfile.NewRepository(file, "", sheet).Load(ctx)
			if err != nil {
				return err
			}

			pool, err := pgxpool.New(ctx, databaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			repo := postgres.NewPostgresRepository(pool)
			if err := repo.EnsureSchema(ctx); err != nil {
				return err
			}
			n, err := repo.Import(ctx, ds.Records)
			if err != nil {
				return err
			}

			bounds, _ := ds.Bounds()
			slog.Info("import finished",
				slog.String("file", file),
				slog.Int64("rows", n),
				slog.String("range", bounds.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "data/day.csv", "Dataset file (.csv or .xlsx)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	cmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall import timeout")

	return cmd
}

func newSampleCmd() *cobra.Command {
	var (
		out   string
		start string
		days  int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic daily rental dataset",
		Long: `Write a synthetic daily rental dataset with seasonal and weekday patterns.

Example: importer sample --out data/day.csv --start 2011-01-01 --days 731`,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := domain.ParseDate(start)
			if err != nil {
				return err
			}
			if days < 1 {
				return fmt.Errorf("--days must be positive")
			}
			records := memory.SampleRecords(from, days, seed)

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			if err := flatfile.WriteCSV(f, records, nil); err != nil {
				return err
			}
			slog.Info("sample written", slog.String("file", out), slog.Int("days", days))
			return f.Close()
		},
	}

	cmd.Flags().StringVar(&out, "out", "data/day.csv", "Output CSV file")
	cmd.Flags().StringVar(&start, "start", "2011-01-01", "First day")
	cmd.Flags().IntVar(&days, "days", 731, "Number of days")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")

	return cmd
}
