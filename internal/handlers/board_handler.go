package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jobtrail/jobtrail-api/internal/dto"
	"github.com/jobtrail/jobtrail-api/internal/middleware"
	"github.com/jobtrail/jobtrail-api/internal/services"
)

type BoardHandler struct {
	boardService *services.BoardService
}

func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// GetBoard handles GET /board.
func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	board, err := h.boardService.GetBoard(user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.BoardEnvelope{Board: board})
}

// CreateColumn handles POST /column. elementId is the board id.
func (h *BoardHandler) CreateColumn(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	column, err := h.boardService.CreateColumn(req.ElementID, user.ID, req.Form)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ColumnCreatedResponse{Column: column})
}

// UpdateColumn handles PATCH /column/:id.
func (h *BoardHandler) UpdateColumn(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	columnID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	var req dto.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.boardService.UpdateColumn(columnID, user.ID, dto.StripBlanks(req.Form)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteColumn handles DELETE /column/:id. Cascades to the column's cells.
func (h *BoardHandler) DeleteColumn(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	columnID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	if err := h.boardService.DeleteColumn(columnID, user.ID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// MoveCell handles PUT /column: the drag-and-drop drop event.
func (h *BoardHandler) MoveCell(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	err := h.boardService.MoveCell(
		user.ID,
		req.Source.DroppableID, req.Source.Index,
		req.Destination.DroppableID, req.Destination.Index,
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CreateCell handles POST /cell. elementId is the column id.
func (h *BoardHandler) CreateCell(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateCellRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	cell, err := h.boardService.CreateCell(req.ElementID, user.ID, req.Form)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CellCreatedResponse{Cell: cell})
}

// UpdateCell handles PATCH /cell/:id.
func (h *BoardHandler) UpdateCell(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	cellID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	var req dto.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.boardService.UpdateCell(cellID, user.ID, dto.StripBlanks(req.Form)); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteCell handles DELETE /cell/:id.
func (h *BoardHandler) DeleteCell(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	cellID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	if err := h.boardService.DeleteCell(cellID, user.ID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// respondError maps service errors to their HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrUnauthenticated):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrIndexOutOfRange):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	default:
		return fiber.ErrInternalServerError
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Message: err.Error(),
	})
}
