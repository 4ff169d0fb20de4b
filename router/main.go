package router

import (
	"github.com/biosecret/voice-todo/handlers"
	"github.com/gofiber/fiber/v2"
)

// Handlers groups the route handlers mounted by SetupRoutes.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Tasks  *handlers.TaskHandler
	Status *handlers.StatusHandler
}

// SetupRoutes mounts the API. Task routes sit behind authGate.
func SetupRoutes(app *fiber.App, h Handlers, authGate fiber.Handler) {
	app.Get("/status", h.Status.HandleStatus)

	auth := app.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)

	// unmatched /tasks* paths fall through to NotFound, so the gate is per route
	tasks := app.Group("/tasks")
	tasks.Get("/", authGate, h.Tasks.HandleAllTasks)
	tasks.Post("/", authGate, h.Tasks.HandleCreateTask)
	tasks.Put("/:id", authGate, h.Tasks.HandleUpdateTask)
	tasks.Delete("/:id", authGate, h.Tasks.HandleDeleteTask)
}
