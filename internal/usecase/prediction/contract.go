package prediction

import (
	"time"

	"github.com/kailas-cloud/carprice/internal/domain/feature"
)

// Catalog provides the form choices derived from the reference dataset.
type Catalog interface {
	DistinctCompanies() []string
	DistinctLocations() []string
	DistinctFuelTypes() []string
	DistinctLabels() []string
	ModelNamesForCompany(company string) []string
}

// Model exposes the trained regressor.
type Model interface {
	Schema() feature.Schema
	Predict(v feature.Vector) (float64, error)
}

// Observer records prediction outcomes for operators.
type Observer interface {
	ObservePrediction(status string, d time.Duration)
	ObserveMatch(field feature.Field, outcome feature.Outcome)
}
