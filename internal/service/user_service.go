package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/smart-entry/visitor-service/internal/domain"
	"github.com/smart-entry/visitor-service/internal/events"
	"github.com/smart-entry/visitor-service/internal/repository"
	apperrors "github.com/smart-entry/visitor-service/pkg/util"
)

// UserService handles the admin console's user listing and batch role
// assignment.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// UserFilter captures the admin console listing filters.
type UserFilter struct {
	SearchText string
	Role       *domain.Role
	Department string
}

// ListUsers returns users matching the filter. Search matches name, employee
// id or department, case-insensitively.
func (s *UserService) ListUsers(ctx context.Context, filter UserFilter) ([]domain.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.SearchText))
	filtered := make([]domain.User, 0, len(users))
	for _, user := range users {
		if search != "" &&
			!strings.Contains(strings.ToLower(user.EmployeeName), search) &&
			!strings.Contains(strings.ToLower(user.EmployeeID), search) &&
			!strings.Contains(strings.ToLower(user.Department), search) {
			continue
		}
		if filter.Role != nil && !user.HasRole(*filter.Role) {
			continue
		}
		if filter.Department != "" && user.Department != filter.Department {
			continue
		}
		filtered = append(filtered, user)
	}
	return filtered, nil
}

// AddRole adds the role to each selected user's role set. Idempotent: users
// already holding the role are untouched; missing ids are skipped.
func (s *UserService) AddRole(ctx context.Context, userIDs []int64, role domain.Role) error {
	return s.batchRoleChange(ctx, userIDs, role, true)
}

// RemoveRole removes the role from each selected user's role set. Idempotent:
// users without the role are untouched; missing ids are skipped.
func (s *UserService) RemoveRole(ctx context.Context, userIDs []int64, role domain.Role) error {
	return s.batchRoleChange(ctx, userIDs, role, false)
}

func (s *UserService) batchRoleChange(ctx context.Context, userIDs []int64, role domain.Role, add bool) error {
	if !domain.IsKnownRole(role) {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}

	changed := make([]int64, 0, len(userIDs))
	for _, id := range userIDs {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return apperrors.MapError(err)
		}

		before := len(user.Roles)
		if add {
			user.AddRole(role)
		} else {
			user.RemoveRole(role)
		}
		if len(user.Roles) == before {
			continue
		}
		if err := s.users.UpdateRoles(ctx, user.ID, user.Roles); err != nil {
			return apperrors.MapError(err)
		}
		changed = append(changed, user.ID)
	}

	if len(changed) > 0 && s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:   uuid.NewString(),
			Type: events.EventRolesChanged,
			Payload: events.RolesChangedPayload{
				UserIDs: changed,
				Role:    role,
				Added:   add,
			},
		})
	}
	return nil
}
