package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/config"
	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	rulesColl *mongo.Collection
	excColl   *mongo.Collection
}

// NewMongoAvailabilityRepo creates a new AvailabilityRepository using MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoAvailabilityRepo{
		rulesColl: db.Collection("availability_rules"),
		excColl:   db.Collection("availability_exceptions"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create availability indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	ruleIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "weekday", Value: 1}}},
	}
	if _, err := r.rulesColl.Indexes().CreateMany(ctx, ruleIndexes); err != nil {
		return fmt.Errorf("failed to create rule indexes: %w", err)
	}

	excIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}}},
	}
	if _, err := r.excColl.Indexes().CreateMany(ctx, excIndexes); err != nil {
		return fmt.Errorf("failed to create exception indexes: %w", err)
	}
	return nil
}

// CreateRule inserts a new recurring rule document.
func (r *MongoAvailabilityRepo) CreateRule(rule *models.AvailabilityRule) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	rule.CreatedAt = time.Now()
	if _, err := r.rulesColl.InsertOne(ctx, rule); err != nil {
		return fmt.Errorf("failed to create availability rule: %w", err)
	}
	return nil
}

// DeleteRule removes a rule document scoped to its owning provider.
func (r *MongoAvailabilityRepo) DeleteRule(providerID, ruleID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": ruleID, "providerId": providerID}
	result, err := r.rulesColl.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete rule %s: %w", ruleID, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("rule %s not found for provider %s", ruleID, providerID)
	}
	return nil
}

// ListRules retrieves all recurring rules for a provider.
func (r *MongoAvailabilityRepo) ListRules(providerID string) ([]models.AvailabilityRule, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.rulesColl.Find(ctx, bson.M{"providerId": providerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list rules for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var rules []models.AvailabilityRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode rules: %w", err)
	}
	return rules, nil
}

// CreateException inserts a new exclusion date document.
func (r *MongoAvailabilityRepo) CreateException(exc *models.AvailabilityException) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	exc.CreatedAt = time.Now()
	if _, err := r.excColl.InsertOne(ctx, exc); err != nil {
		return fmt.Errorf("failed to create availability exception: %w", err)
	}
	return nil
}

// DeleteException removes an exclusion document scoped to its owning provider.
func (r *MongoAvailabilityRepo) DeleteException(providerID, excID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": excID, "providerId": providerID}
	result, err := r.excColl.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete exception %s: %w", excID, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("exception %s not found for provider %s", excID, providerID)
	}
	return nil
}

// ListExceptions retrieves all exclusion dates for a provider.
func (r *MongoAvailabilityRepo) ListExceptions(providerID string) ([]models.AvailabilityException, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.excColl.Find(ctx, bson.M{"providerId": providerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var exceptions []models.AvailabilityException
	if err := cursor.All(ctx, &exceptions); err != nil {
		return nil, fmt.Errorf("failed to decode exceptions: %w", err)
	}
	return exceptions, nil
}
