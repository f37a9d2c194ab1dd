package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// CSVReader streams records from a comma-separated Storm Events export.
type CSVReader struct {
	file *os.File
	r    *csv.Reader
	cols map[string]int
	line int
}

// OpenCSV opens a CSV file and validates its header row.
func OpenCSV(path string) (*CSVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	r := csv.NewReader(bufio.NewReader(f))
	// Historical exports have ragged rows and loosely quoted comment fields.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &CSVReader{file: f, r: r, cols: cols, line: 1}, nil
}

// Read returns the next record, or io.EOF after the last row.
func (c *CSVReader) Read() (domain.RawRecord, error) {
	row, err := c.r.Read()
	if err != nil {
		if err == io.EOF {
			return domain.RawRecord{}, io.EOF
		}
		return domain.RawRecord{}, fmt.Errorf("read csv row: %w", err)
	}
	c.line++
	return rowToRecord(c.cols, row, c.line), nil
}

func (c *CSVReader) Close() error {
	return c.file.Close()
}
