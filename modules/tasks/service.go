package tasks

import (
	"context"

	domain "github.com/example/todo-tracker-demo/domain/task"
)

// TaskService orchestrates task and subtask operations on top of the
// repository. Every operation takes the owning user's ID and the repository
// scopes each query by it; cross-user access surfaces as a plain not-found.
type TaskService struct {
	repo *TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// CreateTask appends a new task to the owner's list. The priority arrives
// validated at the boundary, but an unknown value is normalized to medium
// here instead of being stored as-is.
func (s *TaskService) CreateTask(_ context.Context, userID string, p CreateTaskParams) (*domain.Task, error) {
	if !domain.ValidPriority(p.Priority) {
		p.Priority = domain.PriorityMedium
	}
	return s.repo.Create(userID, p)
}

// GetTask retrieves a single task owned by the user.
func (s *TaskService) GetTask(_ context.Context, taskID, userID string) (*domain.Task, error) {
	return s.repo.FindByID(taskID, userID)
}

// ListTasks retrieves all of the user's tasks in position order.
func (s *TaskService) ListTasks(_ context.Context, userID string) ([]*domain.Task, error) {
	return s.repo.FindAllByUser(userID)
}

// UpdateTask applies a partial update. A supplied but unknown priority is
// dropped rather than stored, leaving the field unchanged.
func (s *TaskService) UpdateTask(_ context.Context, taskID, userID string, p UpdateTaskParams) (*domain.Task, error) {
	if p.Priority != nil && !domain.ValidPriority(*p.Priority) {
		p.Priority = nil
	}
	return s.repo.Update(taskID, userID, p)
}

// DeleteTask removes a task and its subtasks.
func (s *TaskService) DeleteTask(_ context.Context, taskID, userID string) error {
	return s.repo.Delete(taskID, userID)
}

// DeleteCompleted removes all of the user's completed tasks and returns the
// number removed.
func (s *TaskService) DeleteCompleted(_ context.Context, userID string) (int64, error) {
	return s.repo.DeleteCompleted(userID)
}

// ReorderTasks applies the given position assignments, skipping pairs that
// do not reference one of the user's tasks.
func (s *TaskService) ReorderTasks(_ context.Context, userID string, updates []PositionUpdate) error {
	return s.repo.UpdatePositions(userID, updates)
}

// AddSubtask creates a subtask under one of the user's tasks.
func (s *TaskService) AddSubtask(_ context.Context, taskID, userID, title string) (*domain.Subtask, error) {
	return s.repo.AddSubtask(taskID, userID, title)
}

// ToggleSubtask sets a subtask's completed flag. Idempotent.
func (s *TaskService) ToggleSubtask(_ context.Context, subtaskID, taskID, userID string, completed bool) (*domain.Subtask, error) {
	return s.repo.ToggleSubtask(subtaskID, taskID, userID, completed)
}

// DeleteSubtask removes a subtask from one of the user's tasks.
func (s *TaskService) DeleteSubtask(_ context.Context, subtaskID, taskID, userID string) error {
	return s.repo.DeleteSubtask(subtaskID, taskID, userID)
}
