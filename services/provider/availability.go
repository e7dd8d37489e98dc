package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"slotwise/models"
)

// AddRule validates and stores a recurring weekly availability rule. Times
// are provider-local wall clock; the block must be non-empty.
func (s *DefaultProviderService) AddRule(ctx context.Context, providerID string, rule models.AvailabilityRule) (*models.AvailabilityRule, error) {
	if _, err := s.Repo.GetByID(providerID); err != nil {
		return nil, fmt.Errorf("provider not found: %w", err)
	}
	if rule.Weekday < 0 || rule.Weekday > 6 {
		return nil, fmt.Errorf("weekday must be 0 (Sunday) through 6 (Saturday), got %d", rule.Weekday)
	}
	start, err := time.Parse("15:04", rule.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q, want HH:mm: %w", rule.StartTime, err)
	}
	end, err := time.Parse("15:04", rule.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q, want HH:mm: %w", rule.EndTime, err)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("end time %s must be after start time %s", rule.EndTime, rule.StartTime)
	}

	rule.ID = uuid.New().String()
	rule.ProviderID = providerID
	rule.CreatedAt = time.Now().UTC()

	if err := s.Availability.CreateRule(&rule); err != nil {
		return nil, fmt.Errorf("failed to create availability rule: %w", err)
	}
	return &rule, nil
}

// RemoveRule deletes a rule owned by the provider.
func (s *DefaultProviderService) RemoveRule(ctx context.Context, providerID, ruleID string) error {
	if err := s.Availability.DeleteRule(providerID, ruleID); err != nil {
		return fmt.Errorf("failed to delete availability rule %s: %w", ruleID, err)
	}
	return nil
}

// ListRules retrieves the provider's recurring rules.
func (s *DefaultProviderService) ListRules(ctx context.Context, providerID string) ([]models.AvailabilityRule, error) {
	return s.Availability.ListRules(providerID)
}

// AddException validates and stores an exclusion date.
func (s *DefaultProviderService) AddException(ctx context.Context, providerID string, exc models.AvailabilityException) (*models.AvailabilityException, error) {
	if _, err := s.Repo.GetByID(providerID); err != nil {
		return nil, fmt.Errorf("provider not found: %w", err)
	}
	if _, err := time.Parse("2006-01-02", exc.Date); err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", exc.Date, err)
	}

	exc.ID = uuid.New().String()
	exc.ProviderID = providerID
	exc.CreatedAt = time.Now().UTC()

	if err := s.Availability.CreateException(&exc); err != nil {
		return nil, fmt.Errorf("failed to create exclusion date: %w", err)
	}
	return &exc, nil
}

// RemoveException deletes an exclusion date owned by the provider.
func (s *DefaultProviderService) RemoveException(ctx context.Context, providerID, excID string) error {
	if err := s.Availability.DeleteException(providerID, excID); err != nil {
		return fmt.Errorf("failed to delete exclusion date %s: %w", excID, err)
	}
	return nil
}

// ListExceptions retrieves the provider's exclusion dates.
func (s *DefaultProviderService) ListExceptions(ctx context.Context, providerID string) ([]models.AvailabilityException, error) {
	return s.Availability.ListExceptions(providerID)
}
