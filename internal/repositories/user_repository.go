package repositories

import (
	"context"

	"resep/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// TokenRepository stores issued bearer tokens, one per user. Writes never
// overwrite a token they did not observe, so concurrent issuers agree on
// the stored one.
type TokenRepository interface {
	Create(ctx context.Context, token *models.AuthToken) error
	Replace(ctx context.Context, oldKey string, token *models.AuthToken) error
	GetByKey(ctx context.Context, key string) (*models.AuthToken, error)
	GetByUserID(ctx context.Context, userID string) (*models.AuthToken, error)
}
