package storage

import "context"

// Uploader is the object-storage collaborator for media files.
// Upload returns the delivery URL of the stored object; Delete removes
// an object by its public id ("image" or "video" resource type).
type Uploader interface {
	Upload(ctx context.Context, data []byte, folder string) (string, error)
	Delete(ctx context.Context, publicID, resourceType string) error
}
