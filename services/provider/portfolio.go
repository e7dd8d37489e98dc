package provider

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const portfolioFolder = "portfolio"

// AddPortfolioImage uploads a local file to the media host and appends its
// public ID to the provider's portfolio.
func (s *DefaultProviderService) AddPortfolioImage(ctx context.Context, providerID, localFilePath string) (string, error) {
	p, err := s.Repo.GetByID(providerID)
	if err != nil {
		return "", fmt.Errorf("provider not found: %w", err)
	}

	publicID, err := s.Storage.UploadFile(ctx, localFilePath, portfolioFolder+"/"+providerID)
	if err != nil {
		return "", fmt.Errorf("failed to upload portfolio image: %w", err)
	}

	images := append(p.PortfolioImages, publicID)
	if err := s.Repo.UpdateSetDocument(providerID, bson.M{
		"portfolioImages": images,
		"updatedAt":       time.Now().UTC(),
	}); err != nil {
		// Orphaned upload; remove it rather than leak hosted media.
		_ = s.Storage.DeleteFile(ctx, publicID)
		return "", fmt.Errorf("failed to record portfolio image: %w", err)
	}
	return publicID, nil
}

// RemovePortfolioImage deletes a hosted image and drops its public ID from
// the provider's portfolio.
func (s *DefaultProviderService) RemovePortfolioImage(ctx context.Context, providerID, publicID string) error {
	p, err := s.Repo.GetByID(providerID)
	if err != nil {
		return fmt.Errorf("provider not found: %w", err)
	}

	found := false
	images := make([]string, 0, len(p.PortfolioImages))
	for _, id := range p.PortfolioImages {
		if id == publicID {
			found = true
			continue
		}
		images = append(images, id)
	}
	if !found {
		return fmt.Errorf("image %s is not in the provider's portfolio", publicID)
	}

	if err := s.Storage.DeleteFile(ctx, publicID); err != nil {
		return err
	}
	if err := s.Repo.UpdateSetDocument(providerID, bson.M{
		"portfolioImages": images,
		"updatedAt":       time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	return nil
}
