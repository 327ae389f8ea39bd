package auth

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/todo-tracker-demo/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort defines the interface for authentication operations.
// This is the port that other modules use to access auth functionality.
type AuthPort interface {
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// ResolveToken resolves a bearer token to the user it identifies.
func (a *AuthAdapter) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	req := ResolveTokenRequest{Token: token}
	var resp ResolveTokenResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"resolve-token",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("resolve-token request failed: %w", err)
	}

	if !resp.Valid {
		return nil, fmt.Errorf("token resolution failed: %s", resp.Error)
	}

	return &domain.User{
		ID:       resp.UserID,
		Username: resp.Username,
	}, nil
}
