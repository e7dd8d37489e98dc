package providerRepo

import (
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// GetByEmail retrieves a provider by its email address, nil if absent.
	GetByEmail(email string) (*models.Provider, error)
	// Create inserts a new provider record.
	Create(provider *models.Provider) error
	// Update modifies an existing provider record.
	Update(provider *models.Provider) error
	// UpdateSetDocument applies a partial $set update to a provider record.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a provider record by its ID.
	Delete(id string) error
}
