package tasks

import "time"

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	UserID   string     `json:"user_id"`
	Title    string     `json:"title"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Priority string     `json:"priority,omitempty"`
	Category *string    `json:"category,omitempty"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// ListTasksRequest is the request for listing a user's tasks.
type ListTasksRequest struct {
	UserID string `json:"user_id"`
}

// ListTasksResponse is the response containing a user's tasks in position
// order.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// UpdateTaskRequest is the request for a partial task update. Nil fields
// are left unchanged.
type UpdateTaskRequest struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     *string    `json:"title,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	Priority  *string    `json:"priority,omitempty"`
	Category  *string    `json:"category,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// DeleteCompletedRequest is the request for deleting all completed tasks.
type DeleteCompletedRequest struct {
	UserID string `json:"user_id"`
}

// DeleteCompletedResponse reports how many tasks were removed.
type DeleteCompletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// ReorderRequest is the request for bulk position reassignment.
type ReorderRequest struct {
	UserID    string           `json:"user_id"`
	Positions []PositionUpdate `json:"positions"`
}

// ReorderResponse is the response after a reorder.
type ReorderResponse struct {
	Success bool `json:"success"`
}

// AddSubtaskRequest is the request for adding a subtask to a task.
type AddSubtaskRequest struct {
	TaskID string `json:"task_id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`
}

// ToggleSubtaskRequest is the request for setting a subtask's completed
// flag.
type ToggleSubtaskRequest struct {
	SubtaskID string `json:"subtask_id"`
	TaskID    string `json:"task_id"`
	UserID    string `json:"user_id"`
	Completed bool   `json:"completed"`
}

// DeleteSubtaskRequest is the request for deleting a subtask.
type DeleteSubtaskRequest struct {
	SubtaskID string `json:"subtask_id"`
	TaskID    string `json:"task_id"`
	UserID    string `json:"user_id"`
}

// DeleteSubtaskResponse is the response after deleting a subtask.
type DeleteSubtaskResponse struct {
	Deleted bool `json:"deleted"`
}

// SubtaskResponse represents a subtask in responses.
type SubtaskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	TaskID    string `json:"task_id"`
}

// TaskResponse represents a task in responses.
type TaskResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Completed bool              `json:"completed"`
	Deadline  *time.Time        `json:"deadline,omitempty"`
	Priority  string            `json:"priority"`
	Category  *string           `json:"category,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Position  int               `json:"position"`
	Subtasks  []SubtaskResponse `json:"subtasks"`
}
