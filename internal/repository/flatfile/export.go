package flatfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/bikeshare/dashboard/internal/domain"
)

// ExportSheet is the sheet name of XLSX exports
const ExportSheet = "day"

// WriteCSV encodes records with the source column names, extras appended
func WriteCSV(w io.Writer, records []domain.DailyRentalRecord, extras []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader(extras)); err != nil {
		return fmt.Errorf("flatfile: write header: %w", err)
	}
	for _, rec := range records {
		values := exportValues(rec, extras)
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatCell(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("flatfile: write row %s: %w", rec.Date.Format(domain.DateLayout), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX encodes records as a single-sheet workbook
func WriteXLSX(w io.Writer, records []domain.DailyRentalRecord, extras []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return fmt.Errorf("flatfile: rename sheet: %w", err)
	}

	head := exportHeader(extras)
	headRow := make([]interface{}, len(head))
	for i, h := range head {
		headRow[i] = h
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &headRow); err != nil {
		return fmt.Errorf("flatfile: write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := exportValues(rec, extras)
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("flatfile: write row %s: %w", rec.Date.Format(domain.DateLayout), err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("flatfile: write workbook: %w", err)
	}
	return nil
}

func exportHeader(extras []string) []string {
	head := make([]string, 0, len(RequiredColumns)+len(extras))
	head = append(head, RequiredColumns...)
	return append(head, extras...)
}

// exportValues follows RequiredColumns order
func exportValues(rec domain.DailyRentalRecord, extras []string) []interface{} {
	values := []interface{}{
		rec.Date.Format(domain.DateLayout),
		rec.Season.Code(),
		rec.Weekday,
		rec.Weather.Temp,
		rec.Weather.FeelsLike,
		rec.Weather.Humidity,
		rec.Weather.Windspeed,
		rec.Casual,
		rec.Registered,
		rec.Total,
	}
	for _, col := range extras {
		values = append(values, rec.Extras[col])
	}
	return values
}

func formatCell(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
