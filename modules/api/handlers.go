package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/FunAdventureBooks/task-manager/domain/task"
	"github.com/FunAdventureBooks/task-manager/modules/board"
)

// Programmatic surface. The shape of these four handlers is a wire
// contract: agents script against it, so status codes, query params
// and error payloads stay fixed.

// listTasks handles GET /tasks?archived={true|false}.
// archived=true means "include archived tasks", not "archived only".
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	includeArchived := c.Query("archived") == "true"

	resp, err := m.board.List(c.Context(), includeArchived)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(resp.Tasks)
}

// createTask handles POST /tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var fields task.Fields
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	created, err := m.board.Create(c.Context(), &board.CreateTaskRequest{
		Fields: fields,
		Actor:  m.cfg.AgentName,
	})
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// patchTask handles PATCH /tasks?id=<id>.
func (m *APIModule) patchTask(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return missingID(c)
	}

	var patch task.Patch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	updated, err := m.board.Patch(c.Context(), &board.PatchTaskRequest{
		ID:    id,
		Patch: patch,
		Actor: m.cfg.AgentName,
	})
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(updated)
}

// deleteTask handles DELETE /tasks?id=<id>.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return missingID(c)
	}

	if _, err := m.board.Delete(c.Context(), id); err != nil {
		return storeError(c, err)
	}
	return c.JSON(DeleteResponse{Deleted: true})
}

func missingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Missing id param"})
}

// storeError surfaces any service failure (validation, missing row,
// transport) as 500 with the underlying message. There is no distinct
// 404 on this surface.
func storeError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
}
