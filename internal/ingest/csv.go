// Package ingest parses product sheets (CSV or XLSX) into catalog rows. A
// sheet needs a header row with the name, price, cost and quantity columns;
// column order is free and extra columns are ignored.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cafemetrics/backend-go/internal/domain"
)

var requiredColumns = []string{"name", "price", "cost", "quantity"}

// FromCSV reads a product sheet from CSV. Rows come back in sheet order.
func FromCSV(r io.Reader) ([]domain.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	colMap, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		p, err := parseRow(record, colMap)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		products = append(products, p)
	}

	return products, nil
}

// mapHeader maps column names to indices and checks the required ones exist.
// Matching trims whitespace and ignores case, matching what spreadsheet
// exports actually look like.
func mapHeader(header []string) (map[string]int, error) {
	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}
	return colMap, nil
}

func parseRow(record []string, colMap map[string]int) (domain.Product, error) {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	var p domain.Product
	p.Name = getValue("name")
	if p.Name == "" {
		return p, fmt.Errorf("empty product name")
	}

	var err error
	if p.Price, err = strconv.ParseFloat(getValue("price"), 64); err != nil {
		return p, fmt.Errorf("invalid price %q", getValue("price"))
	}
	if p.Cost, err = strconv.ParseFloat(getValue("cost"), 64); err != nil {
		return p, fmt.Errorf("invalid cost %q", getValue("cost"))
	}
	if p.Quantity, err = parseQuantity(getValue("quantity")); err != nil {
		return p, err
	}

	return p, nil
}

// parseQuantity accepts whole numbers whether or not the sheet formatted
// them with a decimal point ("120" and "120.0" both mean 120 units).
func parseQuantity(raw string) (int, error) {
	if qty, err := strconv.Atoi(raw); err == nil {
		return qty, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid quantity %q", raw)
	}
	return int(f), nil
}
