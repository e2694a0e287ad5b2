package health

import "context"

// Checker reports whether a loaded dependency is usable.
type Checker interface {
	HealthCheck(ctx context.Context) error
}
