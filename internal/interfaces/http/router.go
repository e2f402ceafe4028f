package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CRM-api/internal/application/analytics"
	"github.com/jhoicas/CRM-api/internal/application/auth"
	"github.com/jhoicas/CRM-api/internal/application/authz"
	"github.com/jhoicas/CRM-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	UserUC      *usecase.UserUseCase
	LeadUC      *usecase.LeadUseCase
	ActivityUC  *usecase.ActivityUseCase
	AnalyticsUC *analytics.UseCase
	Realtime    *RealtimeHandler
	Reports     *ReportHandler
	CookieName  string
	CookieTTL   time.Duration
	Secure      bool
}

// Router registra las rutas de la API. El requisito de rol de cada ruta sale
// de la tabla de autorización (RolesAllowed) para no duplicar la política.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (registro y login públicos)
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieName, deps.CookieTTL, deps.Secure)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren cookie de sesión válida)
	protected := api.Group("/", SessionMiddleware(deps.AuthUC, deps.CookieName))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Users (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users", RequireRole(authz.RolesAllowed(authz.OpListUsers)...), userHandler.List)

	// Leads
	leadHandler := NewLeadHandler(deps.LeadUC)
	leads := protected.Group("/leads")
	leads.Get("/", leadHandler.List)
	leads.Post("/", leadHandler.Create)
	leads.Get("/:id", leadHandler.GetByID)
	leads.Put("/:id", leadHandler.Update)
	leads.Delete("/:id", RequireRole(authz.RolesAllowed(authz.OpDeleteLead)...), leadHandler.Delete)

	// Activities (inmutables: solo creación)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Post("/activities", activityHandler.Create)

	// Agregaciones
	statsHandler := NewStatsHandler(deps.AnalyticsUC)
	protected.Get("/stats", statsHandler.Stats)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	protected.Get("/analytics", RequireRole(authz.RolesAllowed(authz.OpReadAnalytics)...), analyticsHandler.Analytics)

	// Reportes (solo admin/manager, misma regla que analytics)
	protected.Get("/reports/pipeline.pdf", RequireRole(authz.RolesAllowed(authz.OpReadAnalytics)...), deps.Reports.PipelinePDF)

	// Canal en tiempo real: ticket de handshake (con sesión) y websocket.
	protected.Get("/realtime/ticket", deps.Realtime.Ticket)
	app.Get("/ws", deps.Realtime.UpgradeMiddleware(deps.CookieName), deps.Realtime.Serve())
}
