package handlers

import (
	"github.com/biosecret/voice-todo/middleware"
	"github.com/biosecret/voice-todo/models"
	"github.com/biosecret/voice-todo/services"
	"github.com/gofiber/fiber/v2"
)

type CreateTaskRequest struct {
	Text string `json:"text"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// HandleAllTasks godoc
// @Summary  List the caller's tasks
// @Tags     tasks
// @Security BearerAuth
// @Produce  json
// @Success  200 {array} models.Task
// @Router   /tasks [get]
func (h *TaskHandler) HandleAllTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.List(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tasks)
}

// HandleCreateTask godoc
// @Summary  Create a task
// @Tags     tasks
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    task body CreateTaskRequest true "Task text"
// @Success  201 {object} models.Task
// @Failure  400 {object} ErrorResponse
// @Router   /tasks [post]
func (h *TaskHandler) HandleCreateTask(c *fiber.Ctx) error {
	var in CreateTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}

	task, err := h.tasks.Create(c.UserContext(), middleware.CallerID(c), in.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// HandleUpdateTask godoc
// @Summary  Update a task's text or completion flag
// @Tags     tasks
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    id    path string           true "Task ID"
// @Param    patch body models.TaskPatch true "Partial update"
// @Success  200 {object} models.Task
// @Failure  404 {object} ErrorResponse
// @Router   /tasks/{id} [put]
func (h *TaskHandler) HandleUpdateTask(c *fiber.Ctx) error {
	var patch models.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(err)
	}

	task, err := h.tasks.Update(c.UserContext(), middleware.CallerID(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(task)
}

// HandleDeleteTask godoc
// @Summary  Delete a task
// @Tags     tasks
// @Security BearerAuth
// @Produce  json
// @Param    id path string true "Task ID"
// @Success  200 {object} MessageResponse
// @Failure  404 {object} ErrorResponse
// @Router   /tasks/{id} [delete]
func (h *TaskHandler) HandleDeleteTask(c *fiber.Ctx) error {
	if err := h.tasks.Delete(c.UserContext(), middleware.CallerID(c), c.Params("id")); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(MessageResponse{Message: "task deleted"})
}
