package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func readCSV(path string) ([]Listing, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	return decodeCSV(f)
}

func decodeCSV(r io.Reader) ([]Listing, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(columnIndex, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	if missing := cols.missing(); len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	var listings []Listing
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		cell := func(name string) string {
			i := cols.pos(name)
			if i < 0 || i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		listings = append(listings, Listing{
			Company:   parseString(cell(colCompany)),
			Name:      parseString(cell(colName)),
			Location:  parseString(cell(colLocation)),
			FuelType:  parseString(cell(colFuelType)),
			Label:     parseString(cell(colLabel)),
			Year:      parseNumber(cell(colYear)),
			KmsDriven: parseNumber(cell(colKmsDriven)),
			Price:     parseNumber(cell(colPrice)),
		})
	}

	return listings, nil
}
