package observability

import (
	"context"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/hashicorp/go-multierror"
)

// Readiness is ready only when every checker is.
type Readiness []sharedobs.ReadinessChecker

// CheckReadiness runs every checker and reports all failures together.
func (r Readiness) CheckReadiness(ctx context.Context) error {
	var result *multierror.Error
	for _, c := range r {
		if err := c.CheckReadiness(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
