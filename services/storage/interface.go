package storage

import "context"

// StorageService hosts provider portfolio media. Files are addressed by the
// host's permanent public ID, which is what the provider record stores.
type StorageService interface {
	// UploadFile uploads a local file into destFolder and returns its public ID.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile removes a hosted file by its public ID.
	DeleteFile(ctx context.Context, publicID string) error
	// GetDownloadURL returns the delivery URL for a hosted image.
	GetDownloadURL(publicID string) (string, error)
}
