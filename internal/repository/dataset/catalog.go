package dataset

import (
	"context"
	"fmt"
	"sort"
)

// Catalog holds the distinct choices derived from the dataset.
// It is built once and never mutated, so it is safe for concurrent readers.
type Catalog struct {
	rows      int
	companies []string
	locations []string
	fuelTypes []string
	labels    []string
	names     map[string][]string
}

// NewCatalog derives distinct, sorted, null-free choices from listings.
func NewCatalog(listings []Listing) *Catalog {
	companies := newStringSet()
	locations := newStringSet()
	fuelTypes := newStringSet()
	labels := newStringSet()
	names := make(map[string]*stringSet)

	for i := range listings {
		l := &listings[i]
		companies.add(l.Company)
		locations.add(l.Location)
		fuelTypes.add(l.FuelType)
		labels.add(l.Label)

		if l.Company == nil {
			continue
		}
		set, ok := names[*l.Company]
		if !ok {
			set = newStringSet()
			names[*l.Company] = set
		}
		set.add(l.Name)
	}

	byCompany := make(map[string][]string, len(names))
	for company, set := range names {
		byCompany[company] = set.sorted()
	}

	return &Catalog{
		rows:      len(listings),
		companies: companies.sorted(),
		locations: locations.sorted(),
		fuelTypes: fuelTypes.sorted(),
		labels:    labels.sorted(),
		names:     byCompany,
	}
}

// Len returns the number of rows the catalog was built from.
func (c *Catalog) Len() int { return c.rows }

// DistinctCompanies returns the sorted company names.
func (c *Catalog) DistinctCompanies() []string { return clone(c.companies) }

// DistinctLocations returns the sorted locations.
func (c *Catalog) DistinctLocations() []string { return clone(c.locations) }

// DistinctFuelTypes returns the sorted fuel types.
func (c *Catalog) DistinctFuelTypes() []string { return clone(c.fuelTypes) }

// DistinctLabels returns the sorted category labels.
func (c *Catalog) DistinctLabels() []string { return clone(c.labels) }

// ModelNamesForCompany returns the sorted model names recorded for company.
// The result is empty, never nil, when the company has none.
func (c *Catalog) ModelNamesForCompany(company string) []string {
	return clone(c.names[company])
}

// HealthCheck fails when the dataset yielded no companies to choose from.
func (c *Catalog) HealthCheck(_ context.Context) error {
	if len(c.companies) == 0 {
		return fmt.Errorf("dataset has no companies")
	}
	return nil
}

type stringSet struct {
	m map[string]struct{}
}

func newStringSet() *stringSet {
	return &stringSet{m: make(map[string]struct{})}
}

func (s *stringSet) add(v *string) {
	if v != nil {
		s.m[*v] = struct{}{}
	}
}

func (s *stringSet) sorted() []string {
	out := make([]string, 0, len(s.m))
	for v := range s.m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
