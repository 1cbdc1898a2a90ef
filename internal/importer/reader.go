// reader.go: tabular file readers producing header-keyed rows
package importer

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/riskradar/riskradar-go/internal/errors"
)

// Row is a single data row keyed by normalized (lowercase, trimmed) column
// header. Missing cells are simply absent from the map.
type Row map[string]string

// ReadRows parses the given file content into rows, choosing the reader by
// file extension. CSV and Excel (.xlsx, .xls) are supported.
func ReadRows(filename string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx", ".xls":
		return ReadExcel(r)
	default:
		return nil, errors.Newf("unsupported file type %q, expected .csv, .xlsx or .xls", filepath.Ext(filename)).
			Component("importer").
			Category(errors.CategoryFileParsing).
			Context("filename", filename).
			Build()
	}
}

// ReadCSV parses CSV content. The first record is the header row; rows
// shorter than the header leave the trailing columns absent.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, parseError("csv", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	return recordsToRows(records), nil
}

// ReadExcel parses the first sheet of an Excel workbook. The first row is
// the header row.
func ReadExcel(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, parseError("excel", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, parseError("excel", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	return recordsToRows(records), nil
}

func recordsToRows(records [][]string) []Row {
	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, cell := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}
	return rows
}

func parseError(format string, err error) error {
	return errors.Newf("failed to parse %s content: %w", format, err).
		Component("importer").
		Category(errors.CategoryFileParsing).
		Context("format", format).
		Build()
}
