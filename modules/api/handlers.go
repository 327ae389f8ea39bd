package api

import (
	"encoding/json"
	"log"
	"net/mail"
	"strings"

	taskdomain "github.com/example/todo-tracker-demo/domain/task"
	userdomain "github.com/example/todo-tracker-demo/domain/user"
	"github.com/example/todo-tracker-demo/modules/auth"
	"github.com/example/todo-tracker-demo/modules/tasks"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer  mono.ServiceContainer
	tasksContainer mono.ServiceContainer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, tasksContainer mono.ServiceContainer) *Handlers {
	return &Handlers{
		authContainer:  authContainer,
		tasksContainer: tasksContainer,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if len(req.Username) < 3 || len(req.Username) > 50 {
		return badRequest(c, "Username must be between 3 and 50 characters")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return badRequest(c, "Invalid email format")
	}
	if len(req.Password) < 6 {
		return badRequest(c, "Password must be at least 6 characters")
	}

	authReq := auth.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.RegisterResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "register",
		json.Marshal, json.Unmarshal, &authReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:       resp.ID,
		Username: resp.Username,
		Email:    resp.Email,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return badRequest(c, "Username and password are required")
	}

	authReq := auth.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "login",
		json.Marshal, json.Unmarshal, &authReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
	})
}

// CreateTask handles task creation for the authenticated user.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if !validTitle(req.Title) {
		return badRequest(c, "Title must be between 1 and 200 characters")
	}
	if req.Priority == "" {
		req.Priority = taskdomain.PriorityMedium
	}
	if !taskdomain.ValidPriority(req.Priority) {
		return badRequest(c, "Priority must be one of: low, medium, high")
	}

	taskReq := tasks.CreateTaskRequest{
		UserID:   user.ID,
		Title:    req.Title,
		Deadline: req.Deadline,
		Priority: req.Priority,
		Category: req.Category,
	}
	var resp tasks.TaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.tasksContainer, "create",
		json.Marshal, json.Unmarshal, &taskReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListTasks returns all tasks of the authenticated user in position order.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	taskReq := tasks.ListTasksRequest{UserID: user.ID}
	var resp tasks.ListTasksResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.tasksContainer, "list",
		json.Marshal, json.Unmarshal, &taskReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetTask returns a single task of the authenticated user.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	taskReq := tasks.GetTaskRequest{
		ID:     c.Params("id"),
		UserID: user.ID,
	}
	var resp tasks.TaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.tasksContainer, "get",
		json.Marshal, json.Unmarshal, &taskReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateTask applies a partial update to a task of the authenticated user.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Title != nil && !validTitle(*req.Title) {
		return badRequest(c, "Title must be between 1 and 200 characters")
	}
	if req.Priority != nil && !taskdomain.ValidPriority(*req.Priority) {
		return badRequest(c, "Priority must be one of: low, medium, high")
	}

	taskReq := tasks.UpdateTaskRequest{
		ID:        c.Params("id"),
		UserID:    user.ID,
		Title:     req.Title,
		Completed: req.Completed,
		Deadline:  req.Deadline,
		Priority:  req.Priority,
		Category:  req.Category,
	}
	var resp tasks.TaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.tasksContainer, "update",
		json.Marshal, json.Unmarshal, &taskReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteTask removes a task of the authenticated user.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	taskReq := tasks.DeleteTaskRequest{
		ID:     c.Params("id"),
		UserID: user.ID,
	}
	var resp tasks.DeleteTaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.tasksContainer, "delete",
		json.Marshal, json.Unmarshal, &taskReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteCompleted removes all completed tasks of the authenticated user.
func (h *Handlers) DeleteCompleted(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	taskReq := tasks.DeleteCompletedRequest{UserID: user.ID}
	var resp tasks.DeleteCompletedResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.tasksContainer, "delete-completed",
		json.Marshal, json.Unmarshal, &taskReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(DeleteCompletedResponse{Deleted: resp.Deleted})
}

// ReorderTasks applies a bulk position reassignment for the authenticated
// user. Pairs referencing tasks the user does not own are skipped.
func (h *Handlers) ReorderTasks(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	var req ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	taskReq := tasks.ReorderRequest{
		UserID:    user.ID,
		Positions: req.Positions,
	}
	var resp tasks.ReorderResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.tasksContainer, "reorder",
		json.Marshal, json.Unmarshal, &taskReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ReorderResponse{Success: resp.Success})
}

// AddSubtask creates a subtask under a task of the authenticated user.
func (h *Handlers) AddSubtask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateSubtaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if !validTitle(req.Title) {
		return badRequest(c, "Title must be between 1 and 200 characters")
	}

	taskReq := tasks.AddSubtaskRequest{
		TaskID: c.Params("id"),
		UserID: user.ID,
		Title:  req.Title,
	}
	var resp tasks.SubtaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.tasksContainer, "add-subtask",
		json.Marshal, json.Unmarshal, &taskReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ToggleSubtask sets the completed flag of a subtask.
func (h *Handlers) ToggleSubtask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	var req ToggleSubtaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	taskReq := tasks.ToggleSubtaskRequest{
		SubtaskID: c.Params("subtaskID"),
		TaskID:    c.Params("id"),
		UserID:    user.ID,
		Completed: req.Completed,
	}
	var resp tasks.SubtaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.tasksContainer, "toggle-subtask",
		json.Marshal, json.Unmarshal, &taskReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteSubtask removes a subtask from a task of the authenticated user.
func (h *Handlers) DeleteSubtask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	taskReq := tasks.DeleteSubtaskRequest{
		SubtaskID: c.Params("subtaskID"),
		TaskID:    c.Params("id"),
		UserID:    user.ID,
	}
	var resp tasks.DeleteSubtaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.tasksContainer, "delete-subtask",
		json.Marshal, json.Unmarshal, &taskReq, &resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses. Ownership
// violations arrive as plain not-found errors, so cross-user access never
// turns into a "forbidden" that would leak existence.
func (h *Handlers) handleServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid username or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid username or password",
		})
	case strings.Contains(errStr, "already taken"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "Username or email already exists",
		})
	case strings.Contains(errStr, "subtask not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Subtask not found",
		})
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	default:
		// Log the actual error but don't expose it to the client.
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// currentUser returns the user resolved by the auth middleware.
func currentUser(c *fiber.Ctx) (*userdomain.User, bool) {
	user, ok := c.Locals(UserContextKey).(*userdomain.User)
	return user, ok
}

// validTitle reports whether the title is within the 1-200 character bounds.
func validTitle(title string) bool {
	return len(title) >= 1 && len(title) <= 200
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}
