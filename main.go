package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/todo-tracker-demo/modules/api"
	"github.com/example/todo-tracker-demo/modules/auth"
	"github.com/example/todo-tracker-demo/modules/tasks"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Todo Tracker ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())  // Independent module (users, tokens)
	app.Register(tasks.NewModule()) // Independent module (tasks, subtasks)
	app.Register(api.NewModule())   // Depends on auth and tasks

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register              - Register a new user")
	log.Println("  POST   /api/v1/auth/login                 - Login and get a bearer token")
	log.Println("  GET    /health                            - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  POST   /api/v1/tasks                      - Create a task")
	log.Println("  GET    /api/v1/tasks                      - List tasks in position order")
	log.Println("  GET    /api/v1/tasks/:id                  - Get a task with subtasks")
	log.Println("  PUT    /api/v1/tasks/:id                  - Partially update a task")
	log.Println("  DELETE /api/v1/tasks/:id                  - Delete a task (and subtasks)")
	log.Println("  DELETE /api/v1/tasks/completed/all        - Delete all completed tasks")
	log.Println("  PUT    /api/v1/tasks/positions/reorder    - Bulk reorder tasks")
	log.Println("  POST   /api/v1/tasks/:id/subtasks              - Add a subtask")
	log.Println("  PUT    /api/v1/tasks/:id/subtasks/:subtaskID   - Toggle a subtask")
	log.Println("  DELETE /api/v1/tasks/:id/subtasks/:subtaskID   - Delete a subtask")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
