package provider

import (
	"context"

	availabilityRepo "slotwise/database/repository/availability"
	providerRepo "slotwise/database/repository/provider"
	"slotwise/models"
	"slotwise/services/storage"
)

// ProviderService manages provider profiles, their recurring availability
// rules and exclusion dates, and their portfolio media.
type ProviderService interface {
	// Register creates a provider profile. Email must be unused.
	Register(ctx context.Context, p *models.Provider) (*models.Provider, error)
	// GetProfile retrieves a provider by ID.
	GetProfile(ctx context.Context, id string) (*models.Provider, error)
	// UpdateProfile applies a patch-style update and returns the fresh record.
	UpdateProfile(ctx context.Context, id string, updates models.ProviderProfileUpdate) (*models.Provider, error)

	// AddRule validates and stores a recurring weekly availability rule.
	AddRule(ctx context.Context, providerID string, rule models.AvailabilityRule) (*models.AvailabilityRule, error)
	// RemoveRule deletes a rule owned by the provider.
	RemoveRule(ctx context.Context, providerID, ruleID string) error
	// ListRules retrieves the provider's recurring rules.
	ListRules(ctx context.Context, providerID string) ([]models.AvailabilityRule, error)

	// AddException validates and stores an exclusion date.
	AddException(ctx context.Context, providerID string, exc models.AvailabilityException) (*models.AvailabilityException, error)
	// RemoveException deletes an exclusion date owned by the provider.
	RemoveException(ctx context.Context, providerID, excID string) error
	// ListExceptions retrieves the provider's exclusion dates.
	ListExceptions(ctx context.Context, providerID string) ([]models.AvailabilityException, error)

	// AddPortfolioImage uploads a local file and appends its public ID to the
	// provider's portfolio.
	AddPortfolioImage(ctx context.Context, providerID, localFilePath string) (string, error)
	// RemovePortfolioImage deletes a hosted image and drops it from the
	// provider's portfolio.
	RemovePortfolioImage(ctx context.Context, providerID, publicID string) error
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo         providerRepo.ProviderRepository
	Availability availabilityRepo.AvailabilityRepository
	Storage      storage.StorageService
}
