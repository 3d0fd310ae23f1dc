package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resep/internal/models"
	"resep/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the identity store: it creates users, checks credentials
// and issues and validates bearer tokens.
type AuthService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
	jwtSecret []byte
	tokenTTL  time.Duration // zero means tokens never expire
	publisher EventPublisher
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService. publisher may be nil.
func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	publisher EventPublisher,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		publisher: publisher,
		logger:    logger.Named("auth"),
	}
}

// NewUserFields are the optional attributes accepted at signup.
type NewUserFields struct {
	Name string
}

// UserUpdate carries the fields a user may change on their own record.
// Nil fields are left untouched.
type UserUpdate struct {
	Name     *string
	Password *string
}

// CreateUser stores a new active user under the normalized email with a
// hashed password. An empty email or an email already in use is a
// ValidationError and nothing is persisted.
func (s *AuthService) CreateUser(ctx context.Context, email, password string, extra NewUserFields) (*models.User, error) {
	user, err := s.newUser(ctx, email, password, extra)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, errEmailTaken()
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user created", zap.String("user_id", user.ID))
	publish(ctx, s.publisher, s.logger, EventUserRegistered, map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
	})
	return user, nil
}

// CreateSuperuser is CreateUser with the active, staff and superuser flags set.
func (s *AuthService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.newUser(ctx, email, password, NewUserFields{})
	if err != nil {
		return nil, err
	}
	user.IsActive = true
	user.IsStaff = true
	user.IsSuperuser = true
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, errEmailTaken()
		}
		return nil, fmt.Errorf("failed to create superuser: %w", err)
	}
	s.logger.Info("superuser created", zap.String("user_id", user.ID))
	return user, nil
}

func (s *AuthService) newUser(ctx context.Context, email, password string, extra NewUserFields) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, NewValidationError("email", "users must have an email address")
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, errEmailTaken()
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email %s: %w", email, err)
	}

	user := &models.User{
		Email:    email,
		Name:     strings.TrimSpace(extra.Name),
		IsActive: true,
	}
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	return user, nil
}

// errEmailTaken covers both the lookup and a lost race on the unique index.
func errEmailTaken() error {
	return NewValidationError("email", "user with this email already exists")
}

// Authenticate returns the active user matching the credentials. It never
// fails loudly: any mismatch or lookup error yields (nil, false).
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, bool) {
	user, err := s.userRepo.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn("user lookup failed during authentication", zap.Error(err))
		}
		return nil, false
	}
	if !user.IsActive || user.Password == "" {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, false
	}
	return user, true
}

// Login authenticates the credentials and returns the user's bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, ok := s.Authenticate(ctx, email, password)
	if !ok {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(ctx, user)
}

// IssueToken returns the token already held by the user when it is still
// valid, and otherwise signs and stores a new one. The returned key is
// always the stored one, so concurrent logins hand out the same token.
func (s *AuthService) IssueToken(ctx context.Context, user *models.User) (string, error) {
	var staleKey string
	existing, err := s.tokenRepo.GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		if _, parseErr := s.parse(existing.Key); parseErr == nil {
			return existing.Key, nil
		}
		staleKey = existing.Key
	case !errors.Is(err, repositories.ErrNotFound):
		return "", fmt.Errorf("failed to load token: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"jti":     uuid.New().String(),
		"iat":     now.Unix(),
	}
	if s.tokenTTL > 0 {
		claims["exp"] = now.Add(s.tokenTTL).Unix()
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := &models.AuthToken{Key: tokenString, UserID: user.ID, CreatedAt: now}
	if staleKey == "" {
		err = s.tokenRepo.Create(ctx, token)
	} else {
		err = s.tokenRepo.Replace(ctx, staleKey, token)
	}
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	stored, err := s.tokenRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return stored.Key, nil
}

// ValidateToken resolves a bearer token to its active user. The token must
// carry a valid signature and still be the one stored for that user.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	stored, err := s.tokenRepo.GetByKey(ctx, tokenString)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: token revoked", ErrInvalidToken)
		}
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" || userID != stored.UserID {
		return nil, fmt.Errorf("%w: subject mismatch", ErrInvalidToken)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", ErrInvalidToken)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: inactive user", ErrInvalidToken)
	}
	return user, nil
}

func (s *AuthService) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}

// GetUser returns a user by id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser applies upd to the user's own record. The email is immutable.
func (s *AuthService) UpdateUser(ctx context.Context, userID string, upd UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
