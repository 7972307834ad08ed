package dto

import (
	"time"

	"github.com/smart-entry/visitor-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse is the wire form of a user record.
type UserResponse struct {
	ID           int64         `json:"id"`
	EmployeeID   string        `json:"employeeId"`
	EmployeeName string        `json:"employeeName"`
	Department   string        `json:"department"`
	Phone        string        `json:"phone"`
	Roles        []domain.Role `json:"roles"`
}

// BatchRoleRequest selects users for a batch role assignment.
type BatchRoleRequest struct {
	UserIDs []int64     `json:"userIds"`
	Role    domain.Role `json:"role"`
}
