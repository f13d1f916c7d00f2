// Package provider defines the interface for company data sources.
// The Amplemarket provider is the only implementation; the interface exists so
// the HTTP handler and tests can swap in fakes.
package provider

import (
	"context"

	"github.com/fleveque/company-lookup/internal/model"
)

// CompanyProvider looks up a single company by domain or LinkedIn URL.
type CompanyProvider interface {
	// FindCompany performs exactly one lookup for the raw user input.
	// It returns either a record or an error, never both.
	FindCompany(ctx context.Context, input string) (model.CompanyRecord, error)

	// Name returns a human-readable name for the provider.
	Name() string
}
