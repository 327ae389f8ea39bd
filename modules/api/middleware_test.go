package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domain "github.com/example/todo-tracker-demo/domain/user"
	"github.com/gofiber/fiber/v2"
)

// mockAuthPort is a test double for the auth module's token resolution.
type mockAuthPort struct {
	user *domain.User
	err  error
}

func (m *mockAuthPort) ResolveToken(_ context.Context, _ string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func newTestApp(port *mockAuthPort) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(port), func(c *fiber.Ctx) error {
		user := c.Locals(UserContextKey).(*domain.User)
		return c.JSON(fiber.Map{"username": user.Username})
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	alice := &domain.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
	}

	tests := []struct {
		name       string
		header     string
		port       *mockAuthPort
		wantStatus int
	}{
		{
			name:       "valid token",
			header:     "Bearer valid-token",
			port:       &mockAuthPort{user: alice},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			header:     "",
			port:       &mockAuthPort{user: alice},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			port:       &mockAuthPort{user: alice},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			header:     "Bearer ",
			port:       &mockAuthPort{user: alice},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			header:     "Bearer expired-token",
			port:       &mockAuthPort{err: errors.New("invalid token")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.port)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestAuthMiddleware_StoresUserInContext(t *testing.T) {
	alice := &domain.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
	}

	var seen *domain.User
	app := fiber.New()
	app.Get("/whoami", AuthMiddleware(&mockAuthPort{user: alice}), func(c *fiber.Ctx) error {
		seen = c.Locals(UserContextKey).(*domain.User)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if seen == nil || seen.ID != alice.ID {
		t.Error("resolved user not stored in request context")
	}
}
