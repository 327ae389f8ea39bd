package tasks

import (
	"context"
	"fmt"

	domain "github.com/example/todo-tracker-demo/domain/task"
	"github.com/go-monolith/mono"
)

// createTask handles the tasks.create service request.
func (m *TasksModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.UserID == "" {
		return TaskResponse{}, fmt.Errorf("user_id is required")
	}
	if req.Title == "" {
		return TaskResponse{}, fmt.Errorf("title is required")
	}

	task, err := m.service.CreateTask(ctx, req.UserID, CreateTaskParams{
		Title:    req.Title,
		Deadline: req.Deadline,
		Priority: req.Priority,
		Category: req.Category,
	})
	if err != nil {
		return TaskResponse{}, err
	}

	return toTaskResponse(task), nil
}

// getTask handles the tasks.get service request.
func (m *TasksModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.ID == "" || req.UserID == "" {
		return TaskResponse{}, fmt.Errorf("id and user_id are required")
	}

	task, err := m.service.GetTask(ctx, req.ID, req.UserID)
	if err != nil {
		return TaskResponse{}, err
	}

	return toTaskResponse(task), nil
}

// listTasks handles the tasks.list service request.
func (m *TasksModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	if req.UserID == "" {
		return ListTasksResponse{}, fmt.Errorf("user_id is required")
	}

	taskList, err := m.service.ListTasks(ctx, req.UserID)
	if err != nil {
		return ListTasksResponse{}, err
	}

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(taskList)),
		Total: len(taskList),
	}
	for _, task := range taskList {
		response.Tasks = append(response.Tasks, toTaskResponse(task))
	}

	return response, nil
}

// updateTask handles the tasks.update service request.
func (m *TasksModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.ID == "" || req.UserID == "" {
		return TaskResponse{}, fmt.Errorf("id and user_id are required")
	}
	if req.Title != nil && *req.Title == "" {
		return TaskResponse{}, fmt.Errorf("title cannot be empty")
	}

	task, err := m.service.UpdateTask(ctx, req.ID, req.UserID, UpdateTaskParams{
		Title:     req.Title,
		Completed: req.Completed,
		Deadline:  req.Deadline,
		Priority:  req.Priority,
		Category:  req.Category,
	})
	if err != nil {
		return TaskResponse{}, err
	}

	return toTaskResponse(task), nil
}

// deleteTask handles the tasks.delete service request.
func (m *TasksModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if req.ID == "" || req.UserID == "" {
		return DeleteTaskResponse{}, fmt.Errorf("id and user_id are required")
	}

	if err := m.service.DeleteTask(ctx, req.ID, req.UserID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}

	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// deleteCompleted handles the tasks.delete-completed service request.
func (m *TasksModule) deleteCompleted(ctx context.Context, req DeleteCompletedRequest, _ *mono.Msg) (DeleteCompletedResponse, error) {
	if req.UserID == "" {
		return DeleteCompletedResponse{}, fmt.Errorf("user_id is required")
	}

	count, err := m.service.DeleteCompleted(ctx, req.UserID)
	if err != nil {
		return DeleteCompletedResponse{}, err
	}

	return DeleteCompletedResponse{Deleted: count}, nil
}

// reorderTasks handles the tasks.reorder service request.
func (m *TasksModule) reorderTasks(ctx context.Context, req ReorderRequest, _ *mono.Msg) (ReorderResponse, error) {
	if req.UserID == "" {
		return ReorderResponse{}, fmt.Errorf("user_id is required")
	}

	if err := m.service.ReorderTasks(ctx, req.UserID, req.Positions); err != nil {
		return ReorderResponse{}, err
	}

	return ReorderResponse{Success: true}, nil
}

// addSubtask handles the tasks.add-subtask service request.
func (m *TasksModule) addSubtask(ctx context.Context, req AddSubtaskRequest, _ *mono.Msg) (SubtaskResponse, error) {
	if req.TaskID == "" || req.UserID == "" {
		return SubtaskResponse{}, fmt.Errorf("task_id and user_id are required")
	}
	if req.Title == "" {
		return SubtaskResponse{}, fmt.Errorf("title is required")
	}

	subtask, err := m.service.AddSubtask(ctx, req.TaskID, req.UserID, req.Title)
	if err != nil {
		return SubtaskResponse{}, err
	}

	return toSubtaskResponse(subtask), nil
}

// toggleSubtask handles the tasks.toggle-subtask service request.
func (m *TasksModule) toggleSubtask(ctx context.Context, req ToggleSubtaskRequest, _ *mono.Msg) (SubtaskResponse, error) {
	if req.SubtaskID == "" || req.TaskID == "" || req.UserID == "" {
		return SubtaskResponse{}, fmt.Errorf("subtask_id, task_id and user_id are required")
	}

	subtask, err := m.service.ToggleSubtask(ctx, req.SubtaskID, req.TaskID, req.UserID, req.Completed)
	if err != nil {
		return SubtaskResponse{}, err
	}

	return toSubtaskResponse(subtask), nil
}

// deleteSubtask handles the tasks.delete-subtask service request.
func (m *TasksModule) deleteSubtask(ctx context.Context, req DeleteSubtaskRequest, _ *mono.Msg) (DeleteSubtaskResponse, error) {
	if req.SubtaskID == "" || req.TaskID == "" || req.UserID == "" {
		return DeleteSubtaskResponse{}, fmt.Errorf("subtask_id, task_id and user_id are required")
	}

	if err := m.service.DeleteSubtask(ctx, req.SubtaskID, req.TaskID, req.UserID); err != nil {
		return DeleteSubtaskResponse{Deleted: false}, err
	}

	return DeleteSubtaskResponse{Deleted: true}, nil
}

// toTaskResponse converts a Task entity to a TaskResponse.
func toTaskResponse(task *domain.Task) TaskResponse {
	subtasks := make([]SubtaskResponse, 0, len(task.Subtasks))
	for i := range task.Subtasks {
		subtasks = append(subtasks, toSubtaskResponse(&task.Subtasks[i]))
	}

	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Completed: task.Completed,
		Deadline:  task.Deadline,
		Priority:  task.Priority,
		Category:  task.Category,
		CreatedAt: task.CreatedAt,
		Position:  task.Position,
		Subtasks:  subtasks,
	}
}

// toSubtaskResponse converts a Subtask entity to a SubtaskResponse.
func toSubtaskResponse(subtask *domain.Subtask) SubtaskResponse {
	return SubtaskResponse{
		ID:        subtask.ID,
		Title:     subtask.Title,
		Completed: subtask.Completed,
		TaskID:    subtask.TaskID,
	}
}
