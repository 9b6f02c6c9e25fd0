package flatfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bikeshare/dashboard/internal/domain"
)

// Repository implements domain.RentalSource over a CSV or XLSX file
type Repository struct {
	path  string
	sheet string
}

// NewRepository creates a file repository. A relative path is resolved
// against baseDir, or the working directory when baseDir is empty.
func NewRepository(path, baseDir, sheet string) *Repository {
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &Repository{path: path, sheet: sheet}
}

// Path returns the resolved file path
func (r *Repository) Path() string {
	return r.path
}

// Describe names the source
func (r *Repository) Describe() string {
	return "file:" + r.path
}

// Health checks that the file exists
func (r *Repository) Health(ctx context.Context) error {
	return r.stat()
}

// Load reads and parses the whole file
func (r *Repository) Load(ctx context.Context) (*domain.Dataset, error) {
	if err := r.stat(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(r.path, r.sheet)
	default:
		rows, err = readCSV(r.path)
	}
	if err != nil {
		return nil, err
	}

	records, extras, err := parseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("flatfile: %s: %w", r.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("flatfile: %s: %w", r.path, domain.ErrEmptyDataset)
	}

	return domain.NewDataset(records, r.Describe(), extras), nil
}

func (r *Repository) stat() error {
	info, err := os.Stat(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("flatfile: %w: %s", domain.ErrSourceNotFound, r.path)
	}
	if err != nil {
		return fmt.Errorf("flatfile: stat %s: %w", r.path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("flatfile: %w: %s is a directory", domain.ErrSourceNotFound, r.path)
	}
	return nil
}
