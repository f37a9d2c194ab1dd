// Package ingest reads Storm Events tables from CSV and XLSX files and yields
// raw records for the pipeline. Readers validate the header before returning,
// so a file missing a required column fails at open time, never mid-run.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// ErrMissingColumn is wrapped by open errors when a required column is absent.
var ErrMissingColumn = errors.New("missing required column")

// Reader yields raw records one at a time, returning io.EOF when exhausted.
type Reader interface {
	Read() (domain.RawRecord, error)
	Close() error
}

// Open selects a reader by file extension: .xlsx for Excel workbooks,
// anything else is treated as CSV.
func Open(path string) (Reader, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return OpenXLSX(path)
	}
	return OpenCSV(path)
}

// columnIndex maps header names to cell positions, verifying every required
// column is present.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	for _, name := range domain.RequiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return idx, nil
}

// rowToRecord extracts the required cells from a row. Short rows are
// tolerated: missing cells read as empty strings. Values are not trimmed;
// downstream parsing decides what whitespace means per field.
func rowToRecord(idx map[string]int, row []string, line int) domain.RawRecord {
	cell := func(name string) string {
		i := idx[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	return domain.RawRecord{
		Line:       line,
		BeginDate:  cell(domain.ColBeginDate),
		EventType:  cell(domain.ColEventType),
		Fatalities: cell(domain.ColFatalities),
		Injuries:   cell(domain.ColInjuries),
		PropDamage: cell(domain.ColPropDamage),
		PropCode:   cell(domain.ColPropCode),
		CropDamage: cell(domain.ColCropDamage),
		CropCode:   cell(domain.ColCropCode),
	}
}
