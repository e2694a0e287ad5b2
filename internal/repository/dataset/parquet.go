package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
)

const parquetBatchSize = 1000

func readParquet(path string) ([]Listing, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	cols := resolveParquetColumns(pf)
	if missing := cols.missing(); len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	listings := make([]Listing, 0, pf.NumRows())
	for _, rg := range pf.RowGroups() {
		if err := readParquetRowGroup(rg, cols, &listings); err != nil {
			return nil, err
		}
	}
	return listings, nil
}

// resolveParquetColumns finds leaf column indexes by top-level name.
func resolveParquetColumns(pf *parquet.File) columnIndex {
	cols := make(columnIndex)
	for i, path := range pf.Schema().Columns() {
		if len(path) == 0 {
			continue
		}
		if _, dup := cols[path[0]]; !dup {
			cols[path[0]] = i
		}
	}
	return cols
}

func readParquetRowGroup(rg parquet.RowGroup, cols columnIndex, out *[]Listing) error {
	rows := parquet.NewRowGroupReader(rg)
	buf := make([]parquet.Row, parquetBatchSize)

	for {
		n, readErr := rows.ReadRows(buf)
		for i := 0; i < n; i++ {
			*out = append(*out, rowToListing(buf[i], cols))
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read rows: %w", readErr)
		}
	}
}

func rowToListing(row parquet.Row, cols columnIndex) Listing {
	var l Listing
	for _, v := range row {
		switch v.Column() {
		case cols.pos(colCompany):
			l.Company = stringValue(v)
		case cols.pos(colName):
			l.Name = stringValue(v)
		case cols.pos(colLocation):
			l.Location = stringValue(v)
		case cols.pos(colFuelType):
			l.FuelType = stringValue(v)
		case cols.pos(colLabel):
			l.Label = stringValue(v)
		case cols.pos(colYear):
			l.Year = numberValue(v)
		case cols.pos(colKmsDriven):
			l.KmsDriven = numberValue(v)
		case cols.pos(colPrice):
			l.Price = numberValue(v)
		}
	}
	return l
}

func stringValue(v parquet.Value) *string {
	if v.IsNull() {
		return nil
	}
	return parseString(v.String())
}

func numberValue(v parquet.Value) *float64 {
	if v.IsNull() {
		return nil
	}
	var f float64
	switch v.Kind() {
	case parquet.Int32:
		f = float64(v.Int32())
	case parquet.Int64:
		f = float64(v.Int64())
	case parquet.Float:
		f = float64(v.Float())
	case parquet.Double:
		f = v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}
