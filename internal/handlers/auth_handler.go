package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jobtrail/jobtrail-api/internal/dto"
	"github.com/jobtrail/jobtrail-api/internal/middleware"
	"github.com/jobtrail/jobtrail-api/internal/services"
)

type AuthHandler struct {
	authService  *services.AuthService
	boardService *services.BoardService
}

func NewAuthHandler(authService *services.AuthService, boardService *services.BoardService) *AuthHandler {
	return &AuthHandler{authService: authService, boardService: boardService}
}

// SignUp handles POST /sign-up. 201 with no body on success.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	creds := req.Credentials
	_, err := h.authService.SignUp(creds.Email, creds.Password, creds.PasswordConfirmation)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return fiber.ErrInternalServerError
	}

	return c.SendStatus(fiber.StatusCreated)
}

// SignIn handles POST /sign-in. 201 with the user (carrying the fresh token)
// and the fully populated board.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, token, err := h.authService.SignIn(req.Credentials.Email, req.Credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return fiber.ErrInternalServerError
	}

	board, err := h.boardService.GetBoard(user.ID)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SignInResponse{
		User: dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Token:     token,
			CreatedAt: user.CreatedAt,
		},
		Board: board,
	})
}

// ChangePassword handles PATCH /change-password. 204 on success.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.authService.ChangePassword(user.ID, req.Passwords.Old, req.Passwords.New); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return fiber.ErrInternalServerError
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SignOut handles DELETE /sign-out. 204 on success.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	if err := h.authService.SignOut(user.ID); err != nil {
		return fiber.ErrInternalServerError
	}

	return c.SendStatus(fiber.StatusNoContent)
}
