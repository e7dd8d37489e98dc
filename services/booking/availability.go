package booking

import (
	"context"
	"time"

	"slotwise/models"
	"slotwise/services/scheduling"
)

// AvailableSlots resolves the provider's recurring availability for one
// calendar date into UTC windows and filters out past and conflicting ones.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context, providerID, date string) ([]models.SlotWindow, error) {
	provider, err := s.Providers.GetByID(providerID)
	if err != nil {
		return nil, WrapBookingError(CodeNotFound, err, "provider %s not found", providerID)
	}

	loc, err := time.LoadLocation(provider.Timezone)
	if err != nil {
		return nil, WrapBookingError(CodeNotFound, err, "provider %s has invalid timezone %q", providerID, provider.Timezone)
	}

	rules, err := s.Availability.ListRules(providerID)
	if err != nil {
		return nil, err
	}
	exceptions, err := s.Availability.ListExceptions(providerID)
	if err != nil {
		return nil, err
	}

	candidates, err := scheduling.CandidateSlots(rules, exceptions, date, provider.SessionMinutes, provider.BufferMinutes, loc)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	// One query covering the whole candidate span; the filter narrows per slot.
	from, to := candidates[0].StartUTC, candidates[0].EndUTC
	for _, c := range candidates[1:] {
		if c.StartUTC.Before(from) {
			from = c.StartUTC
		}
		if c.EndUTC.After(to) {
			to = c.EndUTC
		}
	}
	existing, err := s.Bookings.FindBlocking(providerID, from, to)
	if err != nil {
		return nil, err
	}

	return scheduling.FilterConflicts(candidates, existing, s.Clock.Now()), nil
}
