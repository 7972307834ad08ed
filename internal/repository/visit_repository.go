package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smart-entry/visitor-service/internal/domain"
)

// VisitRepository is the record store contract consumed by the lifecycle and
// query engines. Each write replaces the whole record atomically.
type VisitRepository interface {
	Create(ctx context.Context, visit *domain.Visit) error
	Update(ctx context.Context, visit *domain.Visit) error
	GetByID(ctx context.Context, id int64) (*domain.Visit, error)
	ListAll(ctx context.Context) ([]domain.Visit, error)
}

type visitRepository struct {
	pool *pgxpool.Pool
}

// NewVisitRepository instantiates the postgres-backed repository.
func NewVisitRepository(pool *pgxpool.Pool) VisitRepository {
	return &visitRepository{pool: pool}
}

const visitColumns = `id, badge_code, vendor_name, contact_name, host_name, host_id, room_id,
       visitor_count, purpose, schedule_start_time, schedule_end_time,
       actual_enter_time, actual_end_time, status,
       sig_visitor_checkin, sig_guard_checkin, sig_visitor_checkout, sig_guard_checkout,
       created_at, updated_at`

func (r *visitRepository) Create(ctx context.Context, visit *domain.Visit) error {
	const query = `
        INSERT INTO visits (badge_code, vendor_name, contact_name, host_name, host_id, room_id,
                            visitor_count, purpose, schedule_start_time, schedule_end_time,
                            actual_enter_time, actual_end_time, status,
                            sig_visitor_checkin, sig_guard_checkin, sig_visitor_checkout, sig_guard_checkout)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		visit.BadgeCode,
		visit.Visitor.VendorName,
		visit.Visitor.ContactName,
		visit.Host.EmployeeName,
		visit.HostID,
		visit.RoomID,
		visit.VisitorCount,
		visit.Purpose,
		visit.ScheduleStartTime,
		visit.ScheduleEndTime,
		visit.ActualEnterTime,
		visit.ActualEndTime,
		string(visit.Status),
		visit.Signatures.VisitorCheckIn,
		visit.Signatures.GuardCheckIn,
		visit.Signatures.VisitorCheckOut,
		visit.Signatures.GuardCheckOut,
	).Scan(&visit.ID, &visit.CreatedAt, &visit.UpdatedAt)
}

func (r *visitRepository) Update(ctx context.Context, visit *domain.Visit) error {
	const query = `
        UPDATE visits SET actual_enter_time=$1, actual_end_time=$2, status=$3,
            sig_visitor_checkin=$4, sig_guard_checkin=$5, sig_visitor_checkout=$6, sig_guard_checkout=$7,
            updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		visit.ActualEnterTime,
		visit.ActualEndTime,
		string(visit.Status),
		visit.Signatures.VisitorCheckIn,
		visit.Signatures.GuardCheckIn,
		visit.Signatures.VisitorCheckOut,
		visit.Signatures.GuardCheckOut,
		visit.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *visitRepository) GetByID(ctx context.Context, id int64) (*domain.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	visit, err := scanVisit(row)
	if err != nil {
		return nil, err
	}
	return visit, nil
}

func (r *visitRepository) ListAll(ctx context.Context) ([]domain.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Visit
	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *visit)
	}
	return result, rows.Err()
}

func scanVisit(row pgx.Row) (*domain.Visit, error) {
	var (
		visit     domain.Visit
		rawStatus string
		enterTime *time.Time
		endTime   *time.Time
	)
	if err := row.Scan(
		&visit.ID,
		&visit.BadgeCode,
		&visit.Visitor.VendorName,
		&visit.Visitor.ContactName,
		&visit.Host.EmployeeName,
		&visit.HostID,
		&visit.RoomID,
		&visit.VisitorCount,
		&visit.Purpose,
		&visit.ScheduleStartTime,
		&visit.ScheduleEndTime,
		&enterTime,
		&endTime,
		&rawStatus,
		&visit.Signatures.VisitorCheckIn,
		&visit.Signatures.GuardCheckIn,
		&visit.Signatures.VisitorCheckOut,
		&visit.Signatures.GuardCheckOut,
		&visit.CreatedAt,
		&visit.UpdatedAt,
	); err != nil {
		return nil, err
	}

	status, err := domain.ParseVisitStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	visit.Status = status
	visit.ActualEnterTime = enterTime
	visit.ActualEndTime = endTime
	return &visit, nil
}
