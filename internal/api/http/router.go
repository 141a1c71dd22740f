package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/carenotes/internal/api/http/handlers"
	"github.com/spec-kit/carenotes/internal/auth"
	"github.com/spec-kit/carenotes/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Staff          *handlers.StaffHandler
	Children       *handlers.ChildrenHandler
	Organizations  *handlers.OrganizationsHandler
	Placements     *handlers.PlacementsHandler
	Matching       *handlers.MatchingHandler
	HR             *handlers.HRHandler
	Medications    *handlers.MedicationsHandler
	Finance        *handlers.FinanceHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics())

	authGroup := app.Group("/auth")
	authGroup.Post("/staff/login", cfg.Staff.Login)
	authGroup.Post("/password/reset/request", cfg.Staff.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Staff.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireRole(), cfg.Staff.ChangePassword)

	staff := app.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.StaffRoleAdmin))
	staff.Post("/register", cfg.Staff.Register)
	staff.Get("", cfg.Staff.ListStaff)
	staff.Get("/:id", cfg.Staff.GetStaff)
	staff.Patch("/:id/active", cfg.Staff.SetActive)

	children := app.Group("/children", cfg.AuthMiddleware.Handle, auth.RequireRole())
	children.Post("", auth.RequireManager(), cfg.Children.CreateChild)
	children.Get("", cfg.Children.ListChildren)
	children.Get("/:id", cfg.Children.GetChild)
	children.Patch("/:id", auth.RequireManager(), cfg.Children.UpdateChild)
	children.Get("/:id/medications", cfg.Medications.ListMedications)
	children.Get("/:id/medications/interactions", cfg.Medications.CheckInteractions)
	children.Get("/:id/pocket-money", cfg.Finance.ListDisbursements)

	orgs := app.Group("/organizations", cfg.AuthMiddleware.Handle, auth.RequireRole())
	orgs.Post("", auth.RequireManager(), cfg.Organizations.CreateOrganization)
	orgs.Get("", cfg.Organizations.ListOrganizations)
	orgs.Get("/:id", cfg.Organizations.GetOrganization)
	orgs.Put("/:id", auth.RequireManager(), cfg.Organizations.UpdateOrganization)
	orgs.Post("/:id/deactivate", auth.RequireManager(), cfg.Organizations.DeactivateOrganization)

	requests := app.Group("/placement-requests", cfg.AuthMiddleware.Handle, auth.RequireRole())
	requests.Post("", auth.RequireManager(), cfg.Matching.CreateRequest)
	requests.Get("", cfg.Matching.ListRequests)
	requests.Get("/:id", cfg.Matching.GetRequest)
	requests.Get("/:id/matches", cfg.Matching.FindMatches)
	requests.Post("/:id/close", auth.RequireManager(), cfg.Matching.CloseRequest)

	placements := app.Group("/placements", cfg.AuthMiddleware.Handle, auth.RequireRole())
	placements.Post("", auth.RequireManager(), cfg.Placements.CreatePlacement)
	placements.Get("", cfg.Placements.ListPlacements)
	placements.Get("/:id", cfg.Placements.GetPlacement)
	placements.Post("/:id/confirm-arrival", cfg.Placements.ConfirmArrival)
	placements.Post("/:id/end", auth.RequireManager(), cfg.Placements.EndPlacement)
	placements.Post("/:id/fees", auth.RequireManager(), cfg.Placements.AddFee)
	placements.Get("/:id/weekly-cost", cfg.Placements.WeeklyCost)
	placements.Post("/:id/reviews", cfg.Placements.ScheduleReview)
	placements.Get("/:id/reviews", cfg.Placements.ListReviews)
	placements.Post("/:id/agreements", auth.RequireManager(), cfg.Placements.CreateAgreement)
	placements.Get("/:id/agreements", cfg.Placements.ListAgreements)

	reviews := app.Group("/reviews", cfg.AuthMiddleware.Handle, auth.RequireRole())
	reviews.Get("/overdue", cfg.Placements.ListOverdueReviews)
	reviews.Post("/:id/complete", cfg.Placements.CompleteReview)

	agreements := app.Group("/agreements", cfg.AuthMiddleware.Handle, auth.RequireRole())
	agreements.Post("/:id/sign", auth.RequireManager(), cfg.Placements.SignAgreement)

	hr := app.Group("/hr", cfg.AuthMiddleware.Handle, auth.RequireRole())
	hr.Post("/employees", auth.RequireManager(), cfg.HR.CreateEmployee)
	hr.Get("/employees", auth.RequireManager(), cfg.HR.ListEmployees)
	hr.Get("/employees/:id", cfg.HR.GetEmployee)
	hr.Put("/employees/:id", auth.RequireManager(), cfg.HR.UpdateEmployee)
	hr.Get("/employees/:id/time-off", cfg.HR.ListTimeOff)
	hr.Post("/time-off", cfg.HR.RequestTimeOff)
	hr.Post("/time-off/:id/decide", auth.RequireManager(), cfg.HR.DecideTimeOff)
	hr.Post("/shift-swaps", cfg.HR.RequestShiftSwap)
	hr.Get("/shift-swaps", cfg.HR.ListShiftSwaps)
	hr.Post("/shift-swaps/:id/accept", cfg.HR.AcceptShiftSwap)
	hr.Post("/shift-swaps/:id/decide", auth.RequireManager(), cfg.HR.DecideShiftSwap)

	medications := app.Group("/medications", cfg.AuthMiddleware.Handle, auth.RequireRole())
	medications.Post("", cfg.Medications.RecordMedication)
	medications.Post("/:id/discontinue", cfg.Medications.DiscontinueMedication)

	finance := app.Group("/finance", cfg.AuthMiddleware.Handle, auth.RequireRole())
	finance.Post("/pocket-money", cfg.Finance.DisbursePocketMoney)
}
