// Package sheet reads and writes listing workbooks.
package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const listingsSheet = "Listings"

// Header is the first row of every listings workbook.
var Header = []string{"Title", "Description", "Price", "Category", "Image URL"}

type Listing struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
}

// WriteListings writes the listings as an xlsx workbook to w.
func WriteListings(w io.Writer, listings []Listing) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), listingsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(listingsSheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, l := range listings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		price, _ := l.Price.Float64()
		row := []interface{}{l.Title, l.Description, price, l.Category, l.ImageURL}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ReadListings reads the first sheet of an xlsx workbook. The first row is a
// header; blank rows are skipped.
func ReadListings(r io.Reader) ([]Listing, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var listings []Listing
	for i, row := range rows[1:] {
		line := i + 2
		cells := make([]string, len(Header))
		for j := range cells {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		if strings.Join(cells, "") == "" {
			continue
		}

		price, err := decimal.NewFromString(cells[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q", line, cells[2])
		}
		listings = append(listings, Listing{
			Title:       cells[0],
			Description: cells[1],
			Price:       price,
			Category:    cells[3],
			ImageURL:    cells[4],
		})
	}
	return listings, nil
}
