package task

import (
	"time"
)

// Priority levels for a task.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a single todo item owned by exactly one user.
//
// Position is a zero-based ordering index within the owner's task list.
// It is assigned at creation as the owner's current task count and is not
// renumbered on deletion, so gaps (and, after concurrent creates, duplicate
// values) can occur. Listing breaks ties by ID to stay deterministic.
type Task struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Completed bool       `gorm:"not null;default:false" json:"completed"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	UserID    string     `gorm:"size:36;not null;index" json:"user_id"`
	Priority  string     `gorm:"size:10;not null;default:medium" json:"priority"`
	Category  *string    `gorm:"size:100" json:"category,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Position  int        `gorm:"not null;default:0" json:"position"`
	Subtasks  []Subtask  `gorm:"foreignKey:TaskID" json:"subtasks"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Subtask is a checklist entry belonging to a single task. It is only
// reachable through its parent task and is removed when the task is removed.
type Subtask struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Title     string `gorm:"size:200;not null" json:"title"`
	Completed bool   `gorm:"not null;default:false" json:"completed"`
	TaskID    string `gorm:"size:36;not null;index" json:"task_id"`
}

// TableName returns the table name for the Subtask entity.
func (Subtask) TableName() string {
	return "subtasks"
}
