package prediction

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kailas-cloud/carprice/internal/domain"
	"github.com/kailas-cloud/carprice/internal/domain/feature"
	"github.com/kailas-cloud/carprice/internal/domain/selection"
)

// --- Mocks ---

type mockCatalog struct {
	companies []string
	names     map[string][]string
}

func (m *mockCatalog) DistinctCompanies() []string { return m.companies }
func (m *mockCatalog) DistinctLocations() []string { return []string{"Delhi", "Mumbai"} }
func (m *mockCatalog) DistinctFuelTypes() []string { return []string{"Diesel", "Petrol"} }
func (m *mockCatalog) DistinctLabels() []string    { return []string{"GOLD", "PLATINUM"} }
func (m *mockCatalog) ModelNamesForCompany(c string) []string {
	if n, ok := m.names[c]; ok {
		return n
	}
	return []string{}
}

type mockModel struct {
	schema  feature.Schema
	value   float64
	err     error
	lastVec feature.Vector
	called  bool
}

func (m *mockModel) Schema() feature.Schema { return m.schema }

func (m *mockModel) Predict(v feature.Vector) (float64, error) {
	m.called = true
	m.lastVec = v
	return m.value, m.err
}

type mockObserver struct {
	statuses []string
	matches  map[feature.Field]feature.Outcome
}

func (m *mockObserver) ObservePrediction(status string, _ time.Duration) {
	m.statuses = append(m.statuses, status)
}

func (m *mockObserver) ObserveMatch(f feature.Field, o feature.Outcome) {
	if m.matches == nil {
		m.matches = make(map[feature.Field]feature.Outcome)
	}
	m.matches[f] = o
}

func defaultCatalog() *mockCatalog {
	return &mockCatalog{
		companies: []string{"Hyundai", "Maruti"},
		names:     map[string][]string{"Maruti": {"Maruti 800", "Maruti Zen"}},
	}
}

func scenarioModel() *mockModel {
	return &mockModel{
		schema: feature.MustSchema("Year", "Kms_driven", "Label", "Mumbai", "Petrol", "Maruti", "Maruti 800"),
		value:  123456.789,
	}
}

// --- Tests ---

func TestChoices_KnownCompany(t *testing.T) {
	svc := New(defaultCatalog(), scenarioModel())
	c := svc.Choices("Maruti")

	if c.Company != "Maruti" {
		t.Errorf("expected company Maruti, got %q", c.Company)
	}
	if !reflect.DeepEqual(c.Names, []string{"Maruti 800", "Maruti Zen"}) {
		t.Errorf("unexpected names %v", c.Names)
	}
	if !reflect.DeepEqual(c.Companies, []string{"Hyundai", "Maruti"}) {
		t.Errorf("unexpected companies %v", c.Companies)
	}
	if len(c.Locations) != 2 || len(c.FuelTypes) != 2 || len(c.Labels) != 2 {
		t.Errorf("expected catalog choices to be passed through, got %+v", c)
	}
}

func TestChoices_UnknownCompanyFallsBackToFirst(t *testing.T) {
	svc := New(defaultCatalog(), scenarioModel())

	for _, company := range []string{"", "Tata"} {
		c := svc.Choices(company)
		if c.Company != "Hyundai" {
			t.Errorf("company %q: expected fallback to Hyundai, got %q", company, c.Company)
		}
		if len(c.Names) != 0 {
			t.Errorf("company %q: expected no names for Hyundai, got %v", company, c.Names)
		}
	}
}

func TestChoices_EmptyCatalog(t *testing.T) {
	svc := New(&mockCatalog{}, scenarioModel())
	c := svc.Choices("Maruti")

	if c.Company != "" {
		t.Errorf("expected empty company, got %q", c.Company)
	}
}

func TestPredict_Success(t *testing.T) {
	model := scenarioModel()
	obs := &mockObserver{}
	svc := New(defaultCatalog(), model).WithObserver(obs)

	sel := selection.Selection{
		Company: "Maruti", Name: "Maruti 800", Year: 2018, KmsDriven: 40000,
		FuelType: "Petrol", Location: "Mumbai", Label: "GOLD",
	}
	res, err := svc.Predict(context.Background(), sel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !model.called {
		t.Fatal("expected model to be called")
	}
	if got, _ := model.lastVec.Get("Maruti 800"); got != 1 {
		t.Errorf("expected vector to carry Maruti 800 = 1, got %v", got)
	}
	if res.Price.StringFixed(2) != "123456.79" {
		t.Errorf("expected price 123456.79, got %s", res.Price.StringFixed(2))
	}
	if res.Formatted != "₹ 123,456.79" {
		t.Errorf("unexpected formatted price %q", res.Formatted)
	}
	if res.Selection != sel {
		t.Errorf("expected selection echo, got %+v", res.Selection)
	}
	if res.Matches[feature.FieldName].Outcome != feature.OutcomeExact {
		t.Errorf("expected exact name match, got %+v", res.Matches[feature.FieldName])
	}

	if !reflect.DeepEqual(obs.statuses, []string{StatusOK}) {
		t.Errorf("expected one ok observation, got %v", obs.statuses)
	}
	if len(obs.matches) != len(feature.Fields) {
		t.Errorf("expected a match observation per field, got %v", obs.matches)
	}
}

func TestPredict_DegradedSelectionStillPredicts(t *testing.T) {
	obs := &mockObserver{}
	svc := New(defaultCatalog(), scenarioModel()).WithObserver(obs)

	sel := selection.Selection{Company: "Tata", Name: "Tata Nano", Location: "Goa", FuelType: "LPG"}
	if _, err := svc.Predict(context.Background(), sel); err != nil {
		t.Fatalf("unmatched selections must not fail, got %v", err)
	}
	for _, f := range feature.Fields {
		if obs.matches[f] != feature.OutcomeNone {
			t.Errorf("field %s: expected none, got %q", f, obs.matches[f])
		}
	}
}

func TestPredict_ModelError(t *testing.T) {
	model := scenarioModel()
	model.err = domain.ErrInvalidPrediction
	obs := &mockObserver{}
	svc := New(defaultCatalog(), model).WithObserver(obs)

	_, err := svc.Predict(context.Background(), selection.Selection{})
	if !errors.Is(err, domain.ErrInvalidPrediction) {
		t.Fatalf("expected ErrInvalidPrediction, got %v", err)
	}
	if !reflect.DeepEqual(obs.statuses, []string{StatusError}) {
		t.Errorf("expected one error observation, got %v", obs.statuses)
	}
}

func TestPredict_CurrencySymbol(t *testing.T) {
	model := scenarioModel()
	model.value = 1000
	svc := New(defaultCatalog(), model).WithCurrencySymbol("$")

	res, err := svc.Predict(context.Background(), selection.Selection{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Formatted != "$ 1,000.00" {
		t.Errorf("unexpected formatted price %q", res.Formatted)
	}
}

func TestPredict_NoObserver(t *testing.T) {
	svc := New(defaultCatalog(), scenarioModel())
	if _, err := svc.Predict(context.Background(), selection.Selection{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
