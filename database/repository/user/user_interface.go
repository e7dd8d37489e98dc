package userRepo

import "slotwise/models"

// UserRepository defines methods for booker data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address, nil if absent.
	GetByEmail(email string) (*models.User, error)
	// Upsert creates or refreshes the user record keyed by id. Identity is
	// issued externally, so the first booking webhook may be the first time
	// this system sees a booker.
	Upsert(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
}
