package model

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/carprice/internal/domain"
	"github.com/kailas-cloud/carprice/internal/domain/feature"
)

// Holder is a loaded model. It is immutable and safe for concurrent use.
type Holder struct {
	kind     Kind
	schema   feature.Schema
	reg      regressor
	metadata map[string]string
}

// Load reads and validates the artifact at path.
func Load(path string) (*Holder, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelLoad, err)
	}
	h, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// Decode builds a Holder from artifact bytes (YAML or JSON).
func Decode(data []byte) (*Holder, error) {
	var a artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: parse artifact: %w", domain.ErrModelLoad, err)
	}
	if a.Kind == "" {
		a.Kind = KindLinear
	}

	schema, err := feature.NewSchema(a.FeatureNames)
	if err != nil {
		return nil, fmt.Errorf("%w: feature names: %w", domain.ErrModelLoad, err)
	}
	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelLoad, err)
	}

	return &Holder{
		kind:     a.Kind,
		schema:   schema,
		reg:      newRegressor(&a),
		metadata: a.Metadata,
	}, nil
}

// Kind returns the regressor family.
func (h *Holder) Kind() Kind { return h.kind }

// Schema returns the ordered feature columns the model expects.
func (h *Holder) Schema() feature.Schema { return h.schema }

// Metadata returns a copy of the free-form artifact metadata.
func (h *Holder) Metadata() map[string]string {
	out := make(map[string]string, len(h.metadata))
	for k, v := range h.metadata {
		out[k] = v
	}
	return out
}

// Predict returns the model output for v. v must be built on the model's schema.
func (h *Holder) Predict(v feature.Vector) (float64, error) {
	if !v.Schema().Equal(h.schema) {
		return 0, domain.ErrSchemaMismatch
	}
	y := h.reg.predict(v.Values())
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidPrediction, y)
	}
	return y, nil
}

// HealthCheck verifies the model still evaluates a zero row.
func (h *Holder) HealthCheck(_ context.Context) error {
	if _, err := h.Predict(feature.NewVector(h.schema)); err != nil {
		return fmt.Errorf("model health check: %w", err)
	}
	return nil
}
