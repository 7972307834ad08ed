package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/smart-entry/visitor-service/internal/api/dto"
	"github.com/smart-entry/visitor-service/internal/auth"
	"github.com/smart-entry/visitor-service/internal/domain"
	"github.com/smart-entry/visitor-service/internal/service"
	apperrors "github.com/smart-entry/visitor-service/pkg/util"
)

// UsersHandler serves the admin console's user management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List GET /users?search=&role=&department=.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	filter := service.UserFilter{
		SearchText: c.Query("search"),
		Department: c.Query("department"),
	}
	if raw := c.Query("role"); raw != "" && raw != "all" {
		role := domain.Role(raw)
		if !domain.IsKnownRole(role) {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": raw})
		}
		filter.Role = &role
	}

	users, err := h.users.ListUsers(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddRole POST /users/roles/add.
func (h *UsersHandler) AddRole(c *fiber.Ctx) error {
	return h.batchRole(c, h.users.AddRole)
}

// RemoveRole POST /users/roles/remove.
func (h *UsersHandler) RemoveRole(c *fiber.Ctx) error {
	return h.batchRole(c, h.users.RemoveRole)
}

// Capabilities GET /roles/:role/capabilities.
func (h *UsersHandler) Capabilities(c *fiber.Ctx) error {
	role := domain.Role(c.Params("role"))
	if !domain.IsKnownRole(role) {
		return apperrors.NewNotFound("role", map[string]any{"role": string(role)})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"role":         role,
		"capabilities": auth.Capabilities(role),
	}})
}

func (h *UsersHandler) batchRole(c *fiber.Ctx, apply func(ctx context.Context, userIDs []int64, role domain.Role) error) error {
	var req dto.BatchRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.UserIDs) == 0 {
		return apperrors.NewValidationError("select at least one user", map[string]any{"userIds": "required"})
	}
	if err := apply(c.Context(), req.UserIDs, req.Role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           user.ID,
		EmployeeID:   user.EmployeeID,
		EmployeeName: user.EmployeeName,
		Department:   user.Department,
		Phone:        user.Phone,
		Roles:        user.Roles,
	}
}
