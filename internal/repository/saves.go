package repository

import "context"

// Saves stores one serialized save document per profile
type Saves interface {
	// Load returns domain.ErrSaveNotFound when the profile has no save
	Load(ctx context.Context, profileID string) ([]byte, error)
	Save(ctx context.Context, profileID string, data []byte) error
	Delete(ctx context.Context, profileID string) error
	Ping(ctx context.Context) error
}
