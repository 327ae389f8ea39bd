package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/example/todo-tracker-demo/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestService creates an AuthService backed by an in-memory SQLite database.
func setupTestService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	jwtManager := NewJWTManager(JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 30 * time.Minute,
		Issuer:        "test-issuer",
	})

	return NewAuthService(NewUserRepository(db), NewPasswordHasher(), jwtManager)
}

func TestAuthService_Register(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, "alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == "" {
		t.Error("expected user ID to be set")
	}
	if user.Username != "alice" {
		t.Errorf("Username = %v, want alice", user.Username)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %v, want alice@example.com", user.Email)
	}
	if user.PasswordHash == "secret123" {
		t.Error("password must not be stored in plain text")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Same username, different email
	_, err := service.Register(ctx, "alice", "other@example.com", "secret123")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Different username, same email
	_, err := service.Register(ctx, "bob", "alice@example.com", "secret123")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "correct credentials",
			username: "alice",
			password: "secret123",
			wantErr:  nil,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrongpassword",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown username",
			username: "mallory",
			password: "secret123",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Authenticate(ctx, tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && user.Username != tt.username {
				t.Errorf("Username = %v, want %v", user.Username, tt.username)
			}
		})
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, "alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, err := service.IssueToken("alice")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	user, err := service.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if user.ID != registered.ID {
		t.Errorf("resolved user ID = %v, want %v", user.ID, registered.ID)
	}
	if user.Username != "alice" {
		t.Errorf("resolved username = %v, want alice", user.Username)
	}
}

func TestAuthService_Resolve_InvalidToken(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	_, err := service.Resolve(ctx, "garbage.token.value")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Resolve_UnknownUser(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	// A validly signed token whose subject was never registered must not
	// resolve to a user.
	token, err := service.IssueToken("ghost")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	_, err = service.Resolve(ctx, token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
