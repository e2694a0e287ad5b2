package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	ComponentDataset = "dataset"
	ComponentModel   = "model"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	dataset Checker
	model   Checker
}

// New creates a Service over the startup-loaded dataset and model.
func New(dataset, model Checker) *Service {
	return &Service{dataset: dataset, model: model}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{
		ComponentDataset: result(ctx, s.dataset),
		ComponentModel:   result(ctx, s.model),
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func result(ctx context.Context, c Checker) CheckResult {
	if c == nil {
		return CheckError
	}
	if err := c.HealthCheck(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
