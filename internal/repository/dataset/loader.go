package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/carprice/internal/domain"
)

// Format identifies the on-disk dataset encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// IsValid checks if the format is supported. Empty means "infer from extension".
func (f Format) IsValid() bool {
	return f == "" || f == FormatCSV || f == FormatParquet
}

// Load reads the dataset at path and builds its Catalog.
// An empty format is inferred from the file extension.
func Load(path string, format Format) (*Catalog, error) {
	if format == "" {
		format = inferFormat(path)
	}

	var (
		listings []Listing
		err      error
	)
	switch format {
	case FormatCSV:
		listings, err = readCSV(path)
	case FormatParquet:
		listings, err = readParquet(path)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q for %s", domain.ErrDatasetLoad, format, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDatasetLoad, path, err)
	}

	return NewCatalog(listings), nil
}

func inferFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".parquet", ".pq":
		return FormatParquet
	default:
		return Format(strings.TrimPrefix(filepath.Ext(path), "."))
	}
}

// columnIndex maps dataset column names to positions; -1 means absent.
type columnIndex map[string]int

func (ci columnIndex) missing() []string {
	var out []string
	for _, c := range requiredColumns {
		if ci.pos(c) < 0 {
			out = append(out, c)
		}
	}
	return out
}

func (ci columnIndex) pos(name string) int {
	if i, ok := ci[name]; ok {
		return i
	}
	return -1
}
