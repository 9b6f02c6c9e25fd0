package flatfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bikeshare/dashboard/internal/domain"
)

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("flatfile: open %s: %w", path, err)
	}
	defer f.Close()

	return decodeCSV(f)
}

func decodeCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("flatfile: read csv: %w: %v", domain.ErrMalformedSource, err)
	}
	// strip a UTF-8 BOM left by spreadsheet exports
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = trimBOM(rows[0][0])
	}
	return rows, nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
