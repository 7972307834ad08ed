package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/smart-entry/visitor-service/internal/api/dto"
	"github.com/smart-entry/visitor-service/internal/service"
	apperrors "github.com/smart-entry/visitor-service/pkg/util"
)

// AuthHandler serves operator login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.EmployeeID) == "" || req.Password == "" {
		return apperrors.NewValidationError("employeeId and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.EmployeeID, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      userResponse(user),
	}})
}
