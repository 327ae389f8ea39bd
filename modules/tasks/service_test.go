package tasks

import (
	"context"
	"testing"

	domain "github.com/example/todo-tracker-demo/domain/task"
)

func setupTestTaskService(t *testing.T) *TaskService {
	t.Helper()
	return NewTaskService(setupTestRepo(t))
}

func TestTaskService_CreateTask_NormalizesPriority(t *testing.T) {
	service := setupTestTaskService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		priority string
		want     string
	}{
		{
			name:     "valid low",
			priority: domain.PriorityLow,
			want:     domain.PriorityLow,
		},
		{
			name:     "valid high",
			priority: domain.PriorityHigh,
			want:     domain.PriorityHigh,
		},
		{
			name:     "unknown value falls back to medium",
			priority: "urgent",
			want:     domain.PriorityMedium,
		},
		{
			name:     "empty value falls back to medium",
			priority: "",
			want:     domain.PriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := service.CreateTask(ctx, "user-1", CreateTaskParams{
				Title:    "some task",
				Priority: tt.priority,
			})
			if err != nil {
				t.Fatalf("CreateTask() error = %v", err)
			}
			if task.Priority != tt.want {
				t.Errorf("Priority = %v, want %v", task.Priority, tt.want)
			}
		})
	}
}

func TestTaskService_UpdateTask_DropsInvalidPriority(t *testing.T) {
	service := setupTestTaskService(t)
	ctx := context.Background()

	task, err := service.CreateTask(ctx, "user-1", CreateTaskParams{
		Title:    "some task",
		Priority: domain.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	bogus := "critical"
	updated, err := service.UpdateTask(ctx, task.ID, "user-1", UpdateTaskParams{
		Priority: &bogus,
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.Priority != domain.PriorityHigh {
		t.Errorf("invalid priority must leave the field unchanged, got %v", updated.Priority)
	}

	low := domain.PriorityLow
	updated, err = service.UpdateTask(ctx, task.ID, "user-1", UpdateTaskParams{
		Priority: &low,
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.Priority != domain.PriorityLow {
		t.Errorf("Priority = %v, want low", updated.Priority)
	}
}

// TestTaskService_ListFlow walks a user through the typical lifecycle: two
// tasks appended at positions 0 and 1, then swapped via reorder.
func TestTaskService_ListFlow(t *testing.T) {
	service := setupTestTaskService(t)
	ctx := context.Background()

	milk, err := service.CreateTask(ctx, "alice", CreateTaskParams{
		Title:    "Buy milk",
		Priority: domain.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if milk.Position != 0 {
		t.Errorf("first task position = %d, want 0", milk.Position)
	}

	laundry, err := service.CreateTask(ctx, "alice", CreateTaskParams{
		Title:    "Do laundry",
		Priority: domain.PriorityLow,
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if laundry.Position != 1 {
		t.Errorf("second task position = %d, want 1", laundry.Position)
	}

	err = service.ReorderTasks(ctx, "alice", []PositionUpdate{
		{TaskID: laundry.ID, Position: 0},
		{TaskID: milk.ID, Position: 1},
	})
	if err != nil {
		t.Fatalf("ReorderTasks() error = %v", err)
	}

	tasks, err := service.ListTasks(ctx, "alice")
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != laundry.ID || tasks[1].ID != milk.ID {
		t.Errorf("tasks not in reordered positions: got [%s, %s]", tasks[0].Title, tasks[1].Title)
	}

	// Completing and sweeping leaves only the open task.
	done := true
	if _, err := service.UpdateTask(ctx, milk.ID, "alice", UpdateTaskParams{Completed: &done}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	deleted, err := service.DeleteCompleted(ctx, "alice")
	if err != nil {
		t.Fatalf("DeleteCompleted() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	tasks, err = service.ListTasks(ctx, "alice")
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != laundry.ID {
		t.Errorf("expected only the open task to remain")
	}
}
