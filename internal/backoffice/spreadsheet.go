package backoffice

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type, upload .xlsx or .csv")
	ErrEmptyImport     = errors.New("file contains no rows")
)

// importRow is one data row keyed by canonical column name. Line is the
// 1-based row number in the uploaded file.
type importRow struct {
	Line    int
	Name    string
	Email   string
	Zipcode string
}

// record is one parsed row with its line number in the source file.
type record struct {
	line  int
	cells []string
}

var columnAliases = map[string]string{
	"name":     "name",
	"email":    "email",
	"e-mail":   "email",
	"zipcode":  "zipcode",
	"zip code": "zipcode",
	"zip_code": "zipcode",
	"zip":      "zipcode",
}

// readSheet parses the first sheet of an .xlsx workbook or a .csv file. The
// first row is the header.
func readSheet(filename string, r io.Reader) ([]importRow, error) {
	var (
		records []record
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		records, err = readXLSX(r)
	case ".csv":
		records, err = readCSV(r)
	default:
		return nil, ErrUnsupportedFile
	}
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrEmptyImport
	}

	index := make(map[string]int)
	for i, h := range records[0].cells {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if canon, ok := columnAliases[key]; ok {
			if _, seen := index[canon]; !seen {
				index[canon] = i
			}
		}
	}

	cell := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := make([]importRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec.cells) {
			continue
		}
		rows = append(rows, importRow{
			Line:    rec.line,
			Name:    cell(rec.cells, "name"),
			Email:   cell(rec.cells, "email"),
			Zipcode: cell(rec.cells, "zipcode"),
		})
	}
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([]record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyImport
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	// GetRows keeps empty rows between data rows, so the index maps to the
	// sheet row number.
	records := make([]record, 0, len(rows))
	for i, cells := range rows {
		records = append(records, record{line: i + 1, cells: cells})
	}
	return records, nil
}

func readCSV(r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var records []record
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
