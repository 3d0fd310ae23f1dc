package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resep/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user, enforcing email uniqueness like the database index does.
func (r *MockUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %s: %w", user.Email, ErrDuplicate)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

// Update replaces the mutable fields of an existing user.
func (r *MockUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return fmt.Errorf("user with ID %s: %w", user.ID, ErrNotFound)
	}
	existing.Name = user.Name
	existing.Password = user.Password
	existing.IsActive = user.IsActive
	existing.IsStaff = user.IsStaff
	existing.IsSuperuser = user.IsSuperuser
	existing.UpdatedAt = time.Now()
	r.users[user.ID] = existing
	return nil
}

// GetByEmail returns the user with the given normalized email.
func (r *MockUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

// GetByID returns a user by its ID.
func (r *MockUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return &u, nil
}

// Count returns the number of stored users.
func (r *MockUserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// MockTokenRepository is an in-memory implementation of TokenRepository.
type MockTokenRepository struct {
	byUser map[string]models.AuthToken
	mu     sync.RWMutex
}

// NewMockTokenRepository creates a new instance of MockTokenRepository.
func NewMockTokenRepository() *MockTokenRepository {
	return &MockTokenRepository{
		byUser: make(map[string]models.AuthToken),
	}
}

// Create stores the token unless the user already holds one.
func (r *MockTokenRepository) Create(_ context.Context, token *models.AuthToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[token.UserID]; ok {
		return nil
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	r.byUser[token.UserID] = *token
	return nil
}

// Replace swaps the user's token while oldKey is still the stored key.
func (r *MockTokenRepository) Replace(_ context.Context, oldKey string, token *models.AuthToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.byUser[token.UserID]; !ok || current.Key != oldKey {
		return nil
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	r.byUser[token.UserID] = *token
	return nil
}

// GetByKey looks a token up by its bearer string.
func (r *MockTokenRepository) GetByKey(_ context.Context, key string) (*models.AuthToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.byUser {
		if t.Key == key {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("token: %w", ErrNotFound)
}

// GetByUserID returns the token currently held by the user.
func (r *MockTokenRepository) GetByUserID(_ context.Context, userID string) (*models.AuthToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byUser[userID]
	if !ok {
		return nil, fmt.Errorf("token for user %s: %w", userID, ErrNotFound)
	}
	return &t, nil
}
