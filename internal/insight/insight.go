// Package insight wraps the external AI text-completion service. It only
// decorates responses with free-text commentary: every calculation works
// without it, and callers fall back to static content on any failure.
package insight

import (
	"context"

	"go-hpp-dashboard/internal/apperr"
)

// Generator produces free-text commentary for a prompt. Implementations must
// respect the context deadline; errors are always recoverable by the caller.
type Generator interface {
	GenerateInsights(ctx context.Context, systemRole, prompt string) (string, error)
}

// Unavailable is the Generator used when no insight service is configured.
// It fails immediately so callers take their static fallback path.
type Unavailable struct{}

func (Unavailable) GenerateInsights(_ context.Context, _, _ string) (string, error) {
	return "", apperr.ErrExternalService
}
