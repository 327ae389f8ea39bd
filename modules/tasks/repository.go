package tasks

import (
	"errors"
	"fmt"
	"time"

	domain "github.com/example/todo-tracker-demo/domain/task"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound is returned when a task does not exist for the
	// requesting user. Tasks owned by other users are reported the same
	// way so their existence never leaks.
	ErrTaskNotFound = errors.New("task not found")
	// ErrSubtaskNotFound is returned when a subtask does not belong to the
	// given task, or the task is not owned by the requesting user.
	ErrSubtaskNotFound = errors.New("subtask not found")
)

// CreateTaskParams holds the fields for creating a task.
type CreateTaskParams struct {
	Title    string
	Deadline *time.Time
	Priority string
	Category *string
}

// UpdateTaskParams holds the fields for a partial task update. Nil means
// "leave unchanged"; there is no way to clear a field back to empty through
// this struct, which matches the update semantics of the HTTP API.
type UpdateTaskParams struct {
	Title     *string
	Completed *bool
	Deadline  *time.Time
	Priority  *string
	Category  *string
}

// PositionUpdate assigns a new position to a single task.
type PositionUpdate struct {
	TaskID   string `json:"task_id"`
	Position int    `json:"position"`
}

// TaskRepository handles task and subtask persistence using GORM. Every
// query is scoped by the owning user's ID.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task at the end of the owner's list. The position is
// the owner's current task count; two concurrent creates can race on it and
// produce a duplicate position, which list ordering tolerates via the ID
// tie-break.
func (r *TaskRepository) Create(userID string, p CreateTaskParams) (*domain.Task, error) {
	var count int64
	if err := r.db.Model(&domain.Task{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	task := &domain.Task{
		ID:        uuid.New().String(),
		Title:     p.Title,
		Completed: false,
		Deadline:  p.Deadline,
		UserID:    userID,
		Priority:  p.Priority,
		Category:  p.Category,
		CreatedAt: time.Now().UTC(),
		Position:  int(count),
		Subtasks:  []domain.Subtask{},
	}

	if err := r.db.Create(task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// FindByID retrieves a task with its subtasks, scoped by owner.
func (r *TaskRepository) FindByID(taskID, userID string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.Preload("Subtasks").
		First(&task, "id = ? AND user_id = ?", taskID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindAllByUser retrieves all of the owner's tasks ordered by position,
// breaking ties by ID so the order stays deterministic.
func (r *TaskRepository) FindAllByUser(userID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.Preload("Subtasks").
		Where("user_id = ?", userID).
		Order("position asc, id asc").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// Update applies a partial update to a task, scoped by owner. Only non-nil
// fields change.
func (r *TaskRepository) Update(taskID, userID string, p UpdateTaskParams) (*domain.Task, error) {
	_, err := r.FindByID(taskID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Completed != nil {
		updates["completed"] = *p.Completed
	}
	if p.Deadline != nil {
		updates["deadline"] = *p.Deadline
	}
	if p.Priority != nil {
		updates["priority"] = *p.Priority
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}

	if len(updates) > 0 {
		err := r.db.Model(&domain.Task{}).
			Where("id = ? AND user_id = ?", taskID, userID).
			Updates(updates).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	return r.FindByID(taskID, userID)
}

// Delete removes a task and all of its subtasks in one transaction, scoped
// by owner. The subtasks go first so the cascade holds on every backend.
func (r *TaskRepository) Delete(taskID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task domain.Task
		err := tx.Select("id").First(&task, "id = ? AND user_id = ?", taskID, userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		if err := tx.Delete(&domain.Subtask{}, "task_id = ?", task.ID).Error; err != nil {
			return fmt.Errorf("failed to delete subtasks: %w", err)
		}
		if err := tx.Delete(&domain.Task{}, "id = ?", task.ID).Error; err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
}

// DeleteCompleted removes all of the owner's completed tasks together with
// their subtasks and returns the number of tasks removed.
func (r *TaskRepository) DeleteCompleted(userID string) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var ids []string
		err := tx.Model(&domain.Task{}).
			Where("user_id = ? AND completed = ?", userID, true).
			Pluck("id", &ids).Error
		if err != nil {
			return fmt.Errorf("failed to find completed tasks: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Delete(&domain.Subtask{}, "task_id IN ?", ids).Error; err != nil {
			return fmt.Errorf("failed to delete subtasks: %w", err)
		}

		result := tx.Delete(&domain.Task{}, "id IN ?", ids)
		if result.Error != nil {
			return fmt.Errorf("failed to delete tasks: %w", result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// UpdatePositions applies the given position assignments. Pairs referencing
// tasks the owner does not have are silently skipped; no uniqueness of
// position values is enforced.
func (r *TaskRepository) UpdatePositions(userID string, updates []PositionUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			err := tx.Model(&domain.Task{}).
				Where("id = ? AND user_id = ?", u.TaskID, userID).
				Update("position", u.Position).Error
			if err != nil {
				return fmt.Errorf("failed to update position: %w", err)
			}
		}
		return nil
	})
}

// AddSubtask creates a subtask under a task owned by the given user.
func (r *TaskRepository) AddSubtask(taskID, userID, title string) (*domain.Subtask, error) {
	if err := r.requireTask(taskID, userID); err != nil {
		return nil, err
	}

	subtask := &domain.Subtask{
		ID:        uuid.New().String(),
		Title:     title,
		Completed: false,
		TaskID:    taskID,
	}
	if err := r.db.Create(subtask).Error; err != nil {
		return nil, fmt.Errorf("failed to create subtask: %w", err)
	}
	return subtask, nil
}

// ToggleSubtask sets the completed flag of a subtask. The parent task must
// be owned by the user and the subtask must belong to that task. Setting the
// flag to its current value is a no-op success.
func (r *TaskRepository) ToggleSubtask(subtaskID, taskID, userID string, completed bool) (*domain.Subtask, error) {
	if err := r.requireTask(taskID, userID); err != nil {
		return nil, err
	}

	var subtask domain.Subtask
	err := r.db.First(&subtask, "id = ? AND task_id = ?", subtaskID, taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubtaskNotFound
		}
		return nil, fmt.Errorf("failed to find subtask: %w", err)
	}

	err = r.db.Model(&domain.Subtask{}).
		Where("id = ?", subtask.ID).
		Update("completed", completed).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update subtask: %w", err)
	}

	subtask.Completed = completed
	return &subtask, nil
}

// DeleteSubtask removes a subtask after the same ownership and membership
// checks as ToggleSubtask.
func (r *TaskRepository) DeleteSubtask(subtaskID, taskID, userID string) error {
	if err := r.requireTask(taskID, userID); err != nil {
		return err
	}

	result := r.db.Delete(&domain.Subtask{}, "id = ? AND task_id = ?", subtaskID, taskID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subtask: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSubtaskNotFound
	}
	return nil
}

// requireTask checks that the task exists and is owned by the user.
func (r *TaskRepository) requireTask(taskID, userID string) error {
	var count int64
	err := r.db.Model(&domain.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check task: %w", err)
	}
	if count == 0 {
		return ErrTaskNotFound
	}
	return nil
}
