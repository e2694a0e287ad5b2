// Package dataset loads the historical listings used to populate form choices.
package dataset

import (
	"strconv"
	"strings"
)

// Column names in the reference dataset.
const (
	colCompany   = "Company"
	colName      = "Name"
	colLocation  = "Location"
	colFuelType  = "Fuel_type"
	colLabel     = "Label"
	colYear      = "Year"
	colKmsDriven = "Kms_driven"
	colPrice     = "Price"
)

// requiredColumns must be present in every dataset header.
var requiredColumns = []string{colCompany, colName, colLocation, colFuelType, colLabel}

// Listing is one historical listing row. Nil fields are nulls.
type Listing struct {
	Company   *string
	Name      *string
	Location  *string
	FuelType  *string
	Label     *string
	Year      *float64
	KmsDriven *float64
	Price     *float64
}

// nullTokens are cell values read as missing.
var nullTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
	"#N/A": {},
	"<NA>": {},
}

func parseString(raw string) *string {
	if _, null := nullTokens[raw]; null {
		return nil
	}
	s := raw
	return &s
}

// parseNumber reads a numeric cell leniently: thousands separators are
// dropped and anything unparseable is null.
func parseNumber(raw string) *float64 {
	if parseString(raw) == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""), 64)
	if err != nil {
		return nil
	}
	return &f
}
