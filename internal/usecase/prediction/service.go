package prediction

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kailas-cloud/carprice/internal/domain/feature"
	"github.com/kailas-cloud/carprice/internal/domain/price"
	"github.com/kailas-cloud/carprice/internal/domain/selection"
	logpkg "github.com/kailas-cloud/carprice/internal/logger"
)

// Prediction statuses reported to the Observer.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Choices are the options rendered by the form for one company.
type Choices struct {
	Company   string
	Companies []string
	Names     []string
	Locations []string
	FuelTypes []string
	Labels    []string
}

// Result is one prediction, formatted for display. It is never stored.
type Result struct {
	Price     decimal.Decimal
	Formatted string
	Selection selection.Selection
	Matches   feature.Matches
}

// Service wires the catalog and model loaded at startup into request handling.
type Service struct {
	catalog  Catalog
	model    Model
	observer Observer
	symbol   string
}

// New creates a Service. Both dependencies must already be loaded.
func New(catalog Catalog, model Model) *Service {
	return &Service{
		catalog: catalog,
		model:   model,
		symbol:  price.DefaultSymbol,
	}
}

// WithObserver sets the metrics observer.
func (s *Service) WithObserver(o Observer) *Service {
	s.observer = o
	return s
}

// WithCurrencySymbol overrides the symbol used in formatted prices.
func (s *Service) WithCurrencySymbol(symbol string) *Service {
	s.symbol = symbol
	return s
}

// Choices returns the form options. An unknown or empty company falls back
// to the first company, as a dropdown would.
func (s *Service) Choices(company string) Choices {
	companies := s.catalog.DistinctCompanies()
	if !slices.Contains(companies, company) {
		company = ""
		if len(companies) > 0 {
			company = companies[0]
		}
	}

	return Choices{
		Company:   company,
		Companies: companies,
		Names:     s.catalog.ModelNamesForCompany(company),
		Locations: s.catalog.DistinctLocations(),
		FuelTypes: s.catalog.DistinctFuelTypes(),
		Labels:    s.catalog.DistinctLabels(),
	}
}

// Predict builds the feature vector for sel and runs the model.
func (s *Service) Predict(ctx context.Context, sel selection.Selection) (Result, error) {
	start := time.Now()
	ctx = logpkg.WithFields(ctx,
		zap.String("company", sel.Company),
		zap.String("name", sel.Name),
	)
	logger := logpkg.FromContext(ctx)

	vec, matches := feature.Build(sel, s.model.Schema())
	for _, f := range feature.Fields {
		m := matches[f]
		if s.observer != nil {
			s.observer.ObserveMatch(f, m.Outcome)
		}
		logger.Debug("feature mapped",
			zap.String("field", string(f)),
			zap.String("outcome", string(m.Outcome)),
			zap.String("column", m.Column),
		)
	}

	y, err := s.model.Predict(vec)
	if s.observer != nil {
		status := StatusOK
		if err != nil {
			status = StatusError
		}
		s.observer.ObservePrediction(status, time.Since(start))
	}
	if err != nil {
		return Result{}, fmt.Errorf("predict: %w", err)
	}

	amount := price.Round(y)
	logger.Info("prediction",
		zap.String("price", amount.StringFixed(2)),
		zap.Duration("duration", time.Since(start)),
	)

	return Result{
		Price:     amount,
		Formatted: price.Format(amount, s.symbol),
		Selection: sel,
		Matches:   matches,
	}, nil
}
