package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Register creates a provider profile. The timezone and session settings are
// validated up front because every slot computation depends on them.
func (s *DefaultProviderService) Register(ctx context.Context, p *models.Provider) (*models.Provider, error) {
	if p.Email == "" || p.Name == "" {
		return nil, fmt.Errorf("provider email and name are required")
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", p.Timezone, err)
	}
	if p.SessionMinutes <= 0 {
		return nil, fmt.Errorf("session duration must be positive")
	}
	if p.BufferMinutes < 0 {
		return nil, fmt.Errorf("buffer duration must not be negative")
	}

	existing, err := s.Repo.GetByEmail(p.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check provider email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("provider with email %s already exists", p.Email)
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.Repo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	return p, nil
}

// GetProfile retrieves a provider by ID.
func (s *DefaultProviderService) GetProfile(ctx context.Context, id string) (*models.Provider, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("provider not found: %w", err)
	}
	return p, nil
}

// UpdateProfile merges the allowed updates into a partial $set document and
// returns the updated record. Nil fields are left untouched.
func (s *DefaultProviderService) UpdateProfile(ctx context.Context, id string, updates models.ProviderProfileUpdate) (*models.Provider, error) {
	if _, err := s.Repo.GetByID(id); err != nil {
		return nil, fmt.Errorf("provider not found: %w", err)
	}

	updateFields := bson.M{}
	if updates.Name != nil && *updates.Name != "" {
		updateFields["name"] = *updates.Name
	}
	if updates.Timezone != nil {
		if _, err := time.LoadLocation(*updates.Timezone); err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", *updates.Timezone, err)
		}
		updateFields["timezone"] = *updates.Timezone
	}
	if updates.SessionMinutes != nil {
		if *updates.SessionMinutes <= 0 {
			return nil, fmt.Errorf("session duration must be positive")
		}
		updateFields["sessionMinutes"] = *updates.SessionMinutes
	}
	if updates.BufferMinutes != nil {
		if *updates.BufferMinutes < 0 {
			return nil, fmt.Errorf("buffer duration must not be negative")
		}
		updateFields["bufferMinutes"] = *updates.BufferMinutes
	}
	if updates.SessionPrice != nil {
		if *updates.SessionPrice < 0 {
			return nil, fmt.Errorf("session price must not be negative")
		}
		updateFields["sessionPrice"] = *updates.SessionPrice
	}
	if updates.EmailOptIn != nil {
		updateFields["emailOptIn"] = *updates.EmailOptIn
	}
	if updates.FCMToken != nil {
		updateFields["fcmToken"] = *updates.FCMToken
	}
	updateFields["updatedAt"] = time.Now().UTC()

	if err := s.Repo.UpdateSetDocument(id, updateFields); err != nil {
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}
	return s.Repo.GetByID(id)
}
