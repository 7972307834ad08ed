package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smart-entry/visitor-service/internal/domain"
)

// UserRepository encapsulates user persistence. Users are seeded once and
// mutated only by role-assignment operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	UpdateRoles(ctx context.Context, id int64, roles []domain.Role) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates the postgres-backed repository.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, employee_id, employee_name, department, phone, password_hash, roles, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (employee_id, employee_name, department, phone, password_hash, roles)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		user.EmployeeID,
		user.EmployeeName,
		user.Department,
		user.Phone,
		user.PasswordHash,
		rolesToStrings(user.Roles),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE employee_id=$1`
	return scanUser(r.pool.QueryRow(ctx, query, employeeID))
}

func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *userRepository) UpdateRoles(ctx context.Context, id int64, roles []domain.Role) error {
	const query = `UPDATE users SET roles=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, rolesToStrings(roles), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user     domain.User
		rawRoles []string
	)
	if err := row.Scan(
		&user.ID,
		&user.EmployeeID,
		&user.EmployeeName,
		&user.Department,
		&user.Phone,
		&user.PasswordHash,
		&rawRoles,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Roles = stringsToRoles(rawRoles)
	return &user, nil
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

func stringsToRoles(raw []string) []domain.Role {
	out := make([]domain.Role, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.Role(r))
	}
	return out
}
