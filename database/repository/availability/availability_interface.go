package availabilityRepo

import "slotwise/models"

// AvailabilityRepository defines data access for recurring rules and
// exclusion dates. Rules have no update-in-place: providers delete and
// recreate them.
type AvailabilityRepository interface {
	// CreateRule inserts a new recurring rule.
	CreateRule(rule *models.AvailabilityRule) error
	// DeleteRule removes a rule by id, scoped to its owning provider.
	DeleteRule(providerID, ruleID string) error
	// ListRules retrieves all recurring rules for a provider.
	ListRules(providerID string) ([]models.AvailabilityRule, error)

	// CreateException inserts a new exclusion date.
	CreateException(exc *models.AvailabilityException) error
	// DeleteException removes an exclusion by id, scoped to its owning provider.
	DeleteException(providerID, excID string) error
	// ListExceptions retrieves all exclusion dates for a provider.
	ListExceptions(providerID string) ([]models.AvailabilityException, error)
}
