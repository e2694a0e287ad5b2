package feature

import (
	"strings"

	"github.com/kailas-cloud/carprice/internal/domain/selection"
)

// Field names a categorical selection mapped onto indicator columns.
type Field string

const (
	FieldLocation Field = "location"
	FieldFuelType Field = "fuel_type"
	FieldCompany  Field = "company"
	FieldName     Field = "name"
)

// Fields lists the categorical fields in the order Build reports them.
var Fields = []Field{FieldLocation, FieldFuelType, FieldCompany, FieldName}

// Outcome describes how a categorical selection was mapped.
type Outcome string

const (
	// OutcomeExact means a column named exactly like the value was set.
	OutcomeExact Outcome = "exact"
	// OutcomeFallback means the model-name heuristic picked a column.
	OutcomeFallback Outcome = "fallback"
	// OutcomeNone means no column was set for the field.
	OutcomeNone Outcome = "none"
)

// Match is the mapping result for one field.
type Match struct {
	Outcome Outcome
	Column  string // empty when Outcome is OutcomeNone
}

// Matches holds per-field mapping results.
type Matches map[Field]Match

// Build turns a selection into a vector aligned to schema.
//
// Numeric columns receive the selection values verbatim. Location, fuel type
// and company set the column with exactly the same name, if any. The model
// name tries an exact column first, then the first column (in schema order)
// containing both the name's first token and the company; that fallback skips
// the numeric columns and the company's own column. Selections with no
// matching column leave the vector untouched for that field.
func Build(sel selection.Selection, schema Schema) (Vector, Matches) {
	v := NewVector(schema)

	v.Set(ColumnYear, float64(sel.Year))
	v.Set(ColumnKmsDriven, float64(sel.KmsDriven))
	v.Set(ColumnLabel, float64(sel.LabelOrdinal()))

	matches := make(Matches, len(Fields))
	matches[FieldLocation] = setExact(v, sel.Location)
	matches[FieldFuelType] = setExact(v, sel.FuelType)

	name := setExact(v, sel.Name)
	if name.Outcome == OutcomeNone {
		if col, ok := fallbackNameColumn(schema, sel.Name, sel.Company); ok {
			v.Set(col, 1)
			name = Match{Outcome: OutcomeFallback, Column: col}
		}
	}
	matches[FieldName] = name

	matches[FieldCompany] = setExact(v, sel.Company)

	return v, matches
}

func setExact(v Vector, value string) Match {
	if v.Set(value, 1) {
		return Match{Outcome: OutcomeExact, Column: value}
	}
	return Match{Outcome: OutcomeNone}
}

// fallbackNameColumn returns the first candidate column whose name contains
// both the first token of name and company. A blank name never matches.
func fallbackNameColumn(schema Schema, name, company string) (string, bool) {
	token := firstToken(name)
	if token == "" {
		return "", false
	}
	for _, col := range schema.columns {
		if isNumericColumn(col) || col == company {
			continue
		}
		if strings.Contains(col, token) && strings.Contains(col, company) {
			return col, true
		}
	}
	return "", false
}

func firstToken(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}

func isNumericColumn(col string) bool {
	return col == ColumnYear || col == ColumnKmsDriven || col == ColumnLabel
}
