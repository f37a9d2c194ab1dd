package ingest

import (
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXReader streams records from the first sheet of an Excel workbook.
// Some upstream teams redistribute the Storm Events table as .xlsx; the
// contract is identical to the CSV reader.
type XLSXReader struct {
	file *excelize.File
	rows *excelize.Rows
	cols map[string]int
	line int
}

// OpenXLSX opens a workbook, positions on the first sheet, and validates the
// header row.
func OpenXLSX(path string) (*XLSXReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, errors.New("xlsx has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("iterate sheet %q: %w", sheets[0], err)
	}

	if !rows.Next() {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("%s: empty sheet %q", path, sheets[0])
	}
	header, err := rows.Columns()
	if err != nil {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("read xlsx header: %w", err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		rows.Close()
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &XLSXReader{file: f, rows: rows, cols: cols, line: 1}, nil
}

// Read returns the next record, or io.EOF after the last row.
func (x *XLSXReader) Read() (domain.RawRecord, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return domain.RawRecord{}, fmt.Errorf("iterate xlsx rows: %w", err)
		}
		return domain.RawRecord{}, io.EOF
	}

	row, err := x.rows.Columns()
	if err != nil {
		return domain.RawRecord{}, fmt.Errorf("read xlsx row: %w", err)
	}
	x.line++
	return rowToRecord(x.cols, row, x.line), nil
}

func (x *XLSXReader) Close() error {
	rowsErr := x.rows.Close()
	if err := x.file.Close(); err != nil {
		return err
	}
	return rowsErr
}
