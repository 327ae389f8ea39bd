package auth

import (
	"testing"
	"time"
)

func TestJWTManager_GenerateAndDecodeToken(t *testing.T) {
	config := JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 30 * time.Minute,
		Issuer:        "test-issuer",
	}
	manager := NewJWTManager(config)

	token, err := manager.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateToken() returned empty token")
	}

	subject, err := manager.DecodeToken(token)
	if err != nil {
		t.Fatalf("DecodeToken() error = %v", err)
	}

	if subject != "alice" {
		t.Errorf("subject = %v, want %v", subject, "alice")
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	config := DefaultJWTConfig()
	manager := NewJWTManager(config)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "random string",
			token: "not.a.valid.token",
		},
		{
			name:  "malformed jwt",
			token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.DecodeToken(tt.token)
			if err == nil {
				t.Error("DecodeToken() should return error for invalid token")
			}
		})
	}
}

func TestJWTManager_TamperedSignature(t *testing.T) {
	config := DefaultJWTConfig()
	manager := NewJWTManager(config)

	token, err := manager.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// Flip the last character of the signature.
	last := token[len(token)-1]
	replacement := byte('A')
	if last == replacement {
		replacement = 'B'
	}
	tampered := token[:len(token)-1] + string(replacement)

	_, err = manager.DecodeToken(tampered)
	if err == nil {
		t.Error("DecodeToken() should fail for tampered signature")
	}
	if err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_WrongSecretKey(t *testing.T) {
	manager1 := NewJWTManager(JWTConfig{
		SecretKey:     "secret-key-1",
		TokenDuration: 30 * time.Minute,
		Issuer:        "test-issuer",
	})
	manager2 := NewJWTManager(JWTConfig{
		SecretKey:     "secret-key-2",
		TokenDuration: 30 * time.Minute,
		Issuer:        "test-issuer",
	})

	token, err := manager1.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, err = manager2.DecodeToken(token)
	if err == nil {
		t.Error("DecodeToken() should fail with different secret key")
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	config := JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 1 * time.Millisecond, // Very short duration
		Issuer:        "test-issuer",
	}
	manager := NewJWTManager(config)

	token, err := manager.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// Wait for token to expire
	time.Sleep(10 * time.Millisecond)

	_, err = manager.DecodeToken(token)
	if err == nil {
		t.Error("DecodeToken() should fail for expired token")
	}
	if err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTManager_TokenDuration(t *testing.T) {
	config := JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 30 * time.Minute,
		Issuer:        "test-issuer",
	}
	manager := NewJWTManager(config)

	expected := int64(30 * 60) // 30 minutes in seconds
	got := manager.TokenDuration()

	if got != expected {
		t.Errorf("TokenDuration() = %v, want %v", got, expected)
	}
}
