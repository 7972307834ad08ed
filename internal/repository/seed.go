package repository

import (
	"context"
	"time"

	"github.com/smart-entry/visitor-service/internal/domain"
)

// SeedDemoData loads the demo fixture set into empty stores: a day's worth of
// pending, arrived, completed and cancelled visits plus the employee roster.
// passwordHash is shared by every seeded account.
func SeedDemoData(ctx context.Context, visits VisitRepository, users UserRepository, passwordHash string) error {
	existing, err := visits.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, visit := range demoVisits(time.Now()) {
		v := visit
		if err := visits.Create(ctx, &v); err != nil {
			return err
		}
	}
	for _, user := range demoUsers(passwordHash) {
		u := user
		if err := users.Create(ctx, &u); err != nil {
			return err
		}
	}
	return nil
}

func demoVisits(now time.Time) []domain.Visit {
	at := func(daysOffset int, hoursOffset int) time.Time {
		return now.AddDate(0, 0, daysOffset).Add(time.Duration(hoursOffset) * time.Hour)
	}
	ptr := func(t time.Time) *time.Time { return &t }

	pending := func(vendor, contact, host string, start time.Time) domain.Visit {
		return domain.Visit{
			Visitor:           domain.Visitor{VendorName: vendor, ContactName: contact},
			Host:              domain.Host{EmployeeName: host},
			VisitorCount:      1,
			ScheduleStartTime: start,
			ScheduleEndTime:   start.Add(time.Hour),
			Status:            domain.VisitStatusPending,
		}
	}
	arrived := func(vendor, contact, host string, start time.Time) domain.Visit {
		v := pending(vendor, contact, host, start)
		v.Status = domain.VisitStatusArrived
		v.ActualEnterTime = ptr(start)
		return v
	}
	completed := func(vendor, contact, host string, start, end time.Time) domain.Visit {
		v := arrived(vendor, contact, host, start)
		v.Status = domain.VisitStatusCompleted
		v.ActualEndTime = ptr(end)
		return v
	}

	visits := []domain.Visit{
		pending("TechCorp", "John Doe", "Alice Smith", at(0, -3)),
		pending("Logistics Inc.", "Jane Roe", "Bob Jones", at(0, 4)),
		arrived("CleanServices", "Mike Brown", "Charlie Day", at(0, -1)),
		arrived("ABC Consulting", "Sarah Lee", "David Chen", at(0, -2)),
		arrived("XYZ Manufacturing", "Tom Wilson", "Emily Wang", at(0, -3)),
		completed("Building Maintenance", "Kevin Park", "Frank Zhang", at(-1, -5), at(-1, -3)),
		completed("IT Support Co.", "Linda Martinez", "Grace Liu", at(-1, -8), at(-1, -6)),
		completed("Legal Services", "Robert Kim", "Helen Yu", at(-2, -4), at(-2, -2)),
		completed("Catering Services", "Maria Garcia", "Ian Patel", at(-2, -7), at(-2, -5)),
		completed("Security Audit", "James Taylor", "Jack Morrison", at(-3, -6), at(-3, -4)),
		completed("Office Supplies", "Nancy White", "Karen Lee", at(-4, -3), at(-4, -2)),
		completed("Training Center", "Oscar Brown", "Laura Martinez", at(-5, -5), at(-5, -1)),
	}

	cancelled := pending("Courier Service", "Paul Green", "Mike Johnson", at(0, 1))
	cancelled.Status = domain.VisitStatusCancelled
	visits = append(visits, cancelled)
	return visits
}

func demoUsers(passwordHash string) []domain.User {
	user := func(employeeID, name, department, phone string, roles ...domain.Role) domain.User {
		return domain.User{
			EmployeeID:   employeeID,
			EmployeeName: name,
			Department:   department,
			Phone:        phone,
			PasswordHash: passwordHash,
			Roles:        roles,
		}
	}

	return []domain.User{
		user("EMP001", "Alice Smith", "IT", "123-456-7890", domain.RoleAdmin),
		user("EMP002", "Bob Jones", "IT", "123-456-7891", domain.RoleUser),
		user("EMP003", "Charlie Day", "IT", "123-456-7892", domain.RoleUser),
		user("EMP004", "David Chen", "HR", "123-456-7893", domain.RoleUser),
		user("EMP005", "Emily Wang", "HR", "123-456-7894", domain.RoleUser),
		user("EMP006", "Frank Zhang", "Security", "123-456-7895", domain.RoleGuard),
		user("EMP007", "Grace Liu", "Security", "123-456-7896", domain.RoleGuard),
		user("EMP008", "Helen Yu", "Security", "123-456-7897", domain.RoleGuard),
		user("EMP009", "Ian Patel", "Finance", "123-456-7898", domain.RoleUser),
		user("EMP010", "Jack Morrison", "Finance", "123-456-7899", domain.RoleUser, domain.RoleAdmin),
		user("EMP011", "Karen Lee", "Operations", "123-456-7800", domain.RoleUser),
		user("EMP012", "Laura Martinez", "Operations", "123-456-7801", domain.RoleGuard),
	}
}
