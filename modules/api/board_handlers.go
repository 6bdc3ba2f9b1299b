package api

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/FunAdventureBooks/task-manager/domain/task"
	"github.com/FunAdventureBooks/task-manager/modules/board"
)

// Interactive surface backing the embedded board client. Mutations
// here carry no actor name: history entries read "Moved to x on ..."
// without attribution, while the token API attributes the agent.

// boardLogin handles POST /board/login.
func (m *APIModule) boardLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(m.cfg.BoardPassword)) != 1 {
		return unauthorized(c)
	}
	return c.JSON(LoginResponse{OK: true})
}

// boardListTasks handles GET /board/tasks.
func (m *APIModule) boardListTasks(c *fiber.Ctx) error {
	resp, err := m.board.List(c.Context(), false)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(resp.Tasks)
}

// boardListArchive handles GET /board/archive.
func (m *APIModule) boardListArchive(c *fiber.Ctx) error {
	resp, err := m.board.ListArchived(c.Context())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(resp.Tasks)
}

// boardCreateTask handles POST /board/tasks (create modal).
func (m *APIModule) boardCreateTask(c *fiber.Ctx) error {
	var fields task.Fields
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	created, err := m.board.Create(c.Context(), &board.CreateTaskRequest{Fields: fields})
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// boardUpdateTask handles PUT /board/tasks/:id (edit modal save).
func (m *APIModule) boardUpdateTask(c *fiber.Ctx) error {
	var fields task.Fields
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	updated, err := m.board.Update(c.Context(), &board.UpdateTaskRequest{
		ID:     c.Params("id"),
		Fields: fields,
	})
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(updated)
}

// boardMoveTask handles POST /board/tasks/:id/move (drag-and-drop).
func (m *APIModule) boardMoveTask(c *fiber.Ctx) error {
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	moved, err := m.board.Move(c.Context(), &board.MoveTaskRequest{
		ID:     c.Params("id"),
		Status: task.Status(req.Status),
	})
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(moved)
}

// boardRestoreTask handles POST /board/tasks/:id/restore.
func (m *APIModule) boardRestoreTask(c *fiber.Ctx) error {
	restored, err := m.board.Restore(c.Context(), &board.RestoreTaskRequest{
		ID: c.Params("id"),
	})
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(restored)
}

// boardArchiveCompleted handles POST /board/archive-completed.
func (m *APIModule) boardArchiveCompleted(c *fiber.Ctx) error {
	if err := m.board.ArchiveCompleted(c.Context()); err != nil {
		return storeError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// boardDeleteTask handles DELETE /board/tasks/:id.
func (m *APIModule) boardDeleteTask(c *fiber.Ctx) error {
	if _, err := m.board.Delete(c.Context(), c.Params("id")); err != nil {
		return storeError(c, err)
	}
	return c.JSON(DeleteResponse{Deleted: true})
}
