package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smart-entry/visitor-service/internal/api/http/handlers"
	"github.com/smart-entry/visitor-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Visits         *handlers.VisitsHandler
	Reports        *handlers.ReportsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Kiosk transitions are gated on guard
// capabilities, admin console routes on admin capabilities.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/auth/login", cfg.Auth.Login)

	authed := app.Group("", cfg.AuthMiddleware.Handle)

	visits := authed.Group("/visits")
	visits.Get("/today", cfg.Visits.ListToday)
	visits.Post("/walkin", auth.RequireCapability(auth.CapRegisterWalkIns), cfg.Visits.RegisterWalkIn)
	visits.Post("/", auth.RequireCapability(auth.CapCreateAppointments), cfg.Visits.CreateVisit)
	visits.Get("/:id", cfg.Visits.GetVisit)
	visits.Patch("/:id/checkin", auth.RequireCapability(auth.CapCheckInVisitors), cfg.Visits.CheckIn)
	visits.Patch("/:id/checkout", auth.RequireCapability(auth.CapCheckOutVisitors), cfg.Visits.CheckOut)
	visits.Patch("/:id/cancel", auth.RequireCapability(auth.CapCancelAppointments), cfg.Visits.Cancel)

	queues := authed.Group("/queues")
	queues.Get("/checkin", cfg.Visits.CheckInQueue)
	queues.Get("/checkout", cfg.Visits.CheckOutQueue)
	queues.Get("/history", cfg.Visits.History)

	reports := authed.Group("/reports", auth.RequireCapability(auth.CapViewReports))
	reports.Get("/visits", cfg.Reports.Search)
	reports.Get("/visits/export", auth.RequireCapability(auth.CapExportData), cfg.Reports.Export)

	users := authed.Group("/users", auth.RequireCapability(auth.CapManageUsers))
	users.Get("/", cfg.Users.List)
	users.Post("/roles/add", auth.RequireCapability(auth.CapManageRoles), cfg.Users.AddRole)
	users.Post("/roles/remove", auth.RequireCapability(auth.CapManageRoles), cfg.Users.RemoveRole)

	authed.Get("/roles/:role/capabilities", cfg.Users.Capabilities)
}
