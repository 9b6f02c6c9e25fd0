package flatfile

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bikeshare/dashboard/internal/domain"
)

// readXLSX returns the rows of the named sheet, or of the first sheet
func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("flatfile: open %s: %w: %v", path, domain.ErrMalformedSource, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("flatfile: %s: %w: no sheets", path, domain.ErrMalformedSource)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("flatfile: read sheet %q: %w: %v", sheet, domain.ErrMalformedSource, err)
	}
	return rows, nil
}
