package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cafemetrics/backend-go/internal/domain"
	"github.com/xuri/excelize/v2"
)

// FromXLSX reads a product sheet from the first worksheet of an XLSX stream.
func FromXLSX(r io.Reader) ([]domain.Product, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	defer rows.Close()

	var (
		colMap   map[string]int
		products []domain.Product
		line     int
	)
	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read xlsx row: %w", err)
		}
		line++

		if colMap == nil {
			if colMap, err = mapHeader(record); err != nil {
				return nil, err
			}
			continue
		}
		if isBlank(record) {
			continue
		}

		p, err := parseRow(record, colMap)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		products = append(products, p)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating xlsx rows: %w", err)
	}
	if colMap == nil {
		return nil, fmt.Errorf("xlsx sheet %s is empty", sheets[0])
	}

	return products, nil
}

// FromFile dispatches on the file extension. CSV and XLSX are supported.
func FromFile(path string, r io.Reader) ([]domain.Product, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FromCSV(r)
	case ".xlsx", ".xls":
		return FromXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// Trailing spreadsheet rows often come through as runs of empty cells.
func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
