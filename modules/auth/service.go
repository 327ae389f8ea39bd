package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/todo-tracker-demo/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	// An unknown username and a wrong password are deliberately
	// indistinguishable so the login endpoint cannot be used to enumerate
	// accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService handles registration, authentication and token resolution.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Register creates a new user account. Either a username or an email
// collision blocks registration; nothing is written in that case.
func (s *AuthService) Register(_ context.Context, username, email, password string) (*domain.User, error) {
	taken, err := s.repo.UsernameExists(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if taken {
		return nil, ErrUserExists
	}

	taken, err = s.repo.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if taken {
		return nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	// A concurrent registration can still slip between the existence
	// checks and the insert; the unique indexes catch it.
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the credentials and returns the matching user.
func (s *AuthService) Authenticate(_ context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken creates a signed bearer token for the given username.
func (s *AuthService) IssueToken(username string) (string, error) {
	return s.jwt.GenerateToken(username)
}

// TokenDuration returns the issued token lifetime in seconds.
func (s *AuthService) TokenDuration() int64 {
	return s.jwt.TokenDuration()
}

// Resolve decodes a bearer token and loads the user it refers to. An
// invalid or expired token, and a token whose user no longer exists, both
// yield ErrInvalidToken.
func (s *AuthService) Resolve(_ context.Context, token string) (*domain.User, error) {
	username, err := s.jwt.DecodeToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
