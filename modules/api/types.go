package api

import (
	"time"

	"github.com/example/todo-tracker-demo/modules/tasks"
)

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse represents a registered user.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title    string     `json:"title"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Priority string     `json:"priority,omitempty"`
	Category *string    `json:"category,omitempty"`
}

// UpdateTaskRequest represents a partial task update. Omitted fields are
// left unchanged.
type UpdateTaskRequest struct {
	Title     *string    `json:"title,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	Priority  *string    `json:"priority,omitempty"`
	Category  *string    `json:"category,omitempty"`
}

// CreateSubtaskRequest represents a subtask creation request.
type CreateSubtaskRequest struct {
	Title string `json:"title"`
}

// ToggleSubtaskRequest represents a subtask completion toggle.
type ToggleSubtaskRequest struct {
	Completed bool `json:"completed"`
}

// ReorderRequest represents a bulk position reassignment.
type ReorderRequest struct {
	Positions []tasks.PositionUpdate `json:"positions"`
}

// ReorderResponse reports the outcome of a reorder.
type ReorderResponse struct {
	Success bool `json:"success"`
}

// DeleteCompletedResponse reports how many tasks were removed.
type DeleteCompletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
