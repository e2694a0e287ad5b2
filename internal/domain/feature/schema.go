// Package feature maps a form selection onto the model's input columns.
package feature

import "fmt"

// Numeric column names written directly from the selection.
const (
	ColumnYear      = "Year"
	ColumnKmsDriven = "Kms_driven"
	ColumnLabel     = "Label"
)

// Schema is the ordered, immutable set of column names a model expects.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema validates and creates a Schema. Names must be non-empty and unique.
func NewSchema(columns []string) (Schema, error) {
	if len(columns) == 0 {
		return Schema{}, fmt.Errorf("schema has no columns")
	}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c == "" {
			return Schema{}, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := index[c]; dup {
			return Schema{}, fmt.Errorf("duplicate column name: %q", c)
		}
		index[c] = i
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Schema{columns: cols, index: index}, nil
}

// MustSchema is NewSchema for fixed column lists; it panics on error.
func MustSchema(columns ...string) Schema {
	s, err := NewSchema(columns)
	if err != nil {
		panic(err)
	}
	return s
}

// Columns returns a copy of the column names in schema order.
func (s Schema) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Len returns the number of columns.
func (s Schema) Len() int { return len(s.columns) }

// Has reports whether the schema contains the column.
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Index returns the position of the column, or -1.
func (s Schema) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Equal reports whether both schemas list the same columns in the same order.
func (s Schema) Equal(other Schema) bool {
	if len(s.columns) != len(other.columns) {
		return false
	}
	for i := range s.columns {
		if s.columns[i] != other.columns[i] {
			return false
		}
	}
	return true
}

// MissingNumeric returns the numeric columns the schema does not carry.
func (s Schema) MissingNumeric() []string {
	var missing []string
	for _, c := range []string{ColumnYear, ColumnKmsDriven, ColumnLabel} {
		if !s.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}
