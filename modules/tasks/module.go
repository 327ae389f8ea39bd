package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/todo-tracker-demo/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TasksModule provides task and subtask management services via GORM + SQLite.
type TasksModule struct {
	db      *gorm.DB
	service *TaskService
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*TasksModule)(nil)
var _ mono.ServiceProviderModule = (*TasksModule)(nil)
var _ mono.HealthCheckableModule = (*TasksModule)(nil)

// NewModule creates a new TasksModule.
func NewModule() *TasksModule {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "todolist.db"
	}
	return &TasksModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TasksModule) Name() string {
	return "tasks"
}

// Start initializes the database connection and runs migrations.
func (m *TasksModule) Start(_ context.Context) error {
	log.Printf("[tasks] Connecting to SQLite database: %s", m.dbPath)

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := m.db.AutoMigrate(&domain.Task{}, &domain.Subtask{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.service = NewTaskService(NewTaskRepository(m.db))

	log.Println("[tasks] Module started successfully")
	return nil
}

// Stop gracefully closes the database connection.
func (m *TasksModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	log.Println("[tasks] Closing database connection...")

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("[tasks] Database connection closed")
	return nil
}

// Health performs a health check on the tasks module.
func (m *TasksModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
// The framework prefixes service names with "services.<module>." so "create"
// becomes "services.tasks.create" in the NATS subject.
func (m *TasksModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-completed", json.Unmarshal, json.Marshal, m.deleteCompleted,
	); err != nil {
		return fmt.Errorf("failed to register delete-completed service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "reorder", json.Unmarshal, json.Marshal, m.reorderTasks,
	); err != nil {
		return fmt.Errorf("failed to register reorder service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "add-subtask", json.Unmarshal, json.Marshal, m.addSubtask,
	); err != nil {
		return fmt.Errorf("failed to register add-subtask service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "toggle-subtask", json.Unmarshal, json.Marshal, m.toggleSubtask,
	); err != nil {
		return fmt.Errorf("failed to register toggle-subtask service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-subtask", json.Unmarshal, json.Marshal, m.deleteSubtask,
	); err != nil {
		return fmt.Errorf("failed to register delete-subtask service: %w", err)
	}

	log.Printf("[tasks] Registered services: services.tasks.{create,get,list,update,delete,delete-completed,reorder,add-subtask,toggle-subtask,delete-subtask}")
	return nil
}
