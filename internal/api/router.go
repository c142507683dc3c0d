package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/matchday/club-api/internal/api/handler"
	"github.com/matchday/club-api/internal/api/middleware"
	"github.com/matchday/club-api/internal/api/response"
	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

// multipartOverhead is allowed on top of the file limits for form fields and
// part headers.
const multipartOverhead = 1 << 20

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Logger zerolog.Logger

	Authorizer ports.Authorizer
	Auth       ports.AuthService
	Matches    ports.MatchService
	Players    ports.PlayerService
	Products   ports.ProductService
	News       ports.NewsService
	Tickets    ports.TicketService
	Complaints ports.ComplaintService
	Uploader   ports.Uploader

	// Audit receives upload entries; AuditReader backs the admin audit view
	// and may be nil.
	Audit       ports.AuditRecorder
	AuditReader ports.AuditReader

	Health []handler.DependencyCheck

	// Metrics receives the HTTP request metrics and backs /metrics. Nil uses
	// the default Prometheus registry.
	Metrics *prometheus.Registry

	UploadDir    string
	MaxFileBytes int64
	MaxFiles     int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = response.NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.ContextLogger(deps.Logger))
	e.Use(echomiddleware.Logger())
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Metrics != nil {
		registerer, gatherer = deps.Metrics, deps.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:                 "club",
		Registerer:                registerer,
		DoNotUseRequestPathFor404: true,
	}))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(deps.Health...)
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", deps.UploadDir)

	// --- Gates ---
	requireAdmin := middleware.RequireAdmin(deps.Authorizer)
	requireUser := middleware.RequireUser(deps.Authorizer)
	optionalAuth := middleware.OptionalAuth(deps.Authorizer)
	usersOnly := middleware.RequireRole(domain.RoleUser)

	maxBody := deps.MaxFileBytes*int64(deps.MaxFiles) + multipartOverhead
	avatarUpload := middleware.Upload(deps.Uploader, deps.Audit, middleware.UploadOptions{
		Category:     "avatars",
		Required:     true,
		MaxBodyBytes: maxBody,
	})
	upload := middleware.Upload(deps.Uploader, deps.Audit, middleware.UploadOptions{
		Required:     true,
		MaxBodyBytes: maxBody,
	})

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	adminHandler := handler.NewAdminHandler(deps.Auth, deps.AuditReader)
	matchHandler := handler.NewMatchHandler(deps.Matches)
	playerHandler := handler.NewPlayerHandler(deps.Players)
	productHandler := handler.NewProductHandler(deps.Products)
	newsHandler := handler.NewNewsHandler(deps.News)
	ticketHandler := handler.NewTicketHandler(deps.Tickets)
	complaintHandler := handler.NewComplaintHandler(deps.Complaints)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireUser)
	auth.PUT("/profile", authHandler.UpdateProfile, requireUser, usersOnly)
	auth.POST("/avatar", authHandler.UploadAvatar, requireUser, usersOnly, avatarUpload)

	// --- Admin routes ---
	api.POST("/admin/login", adminHandler.Login)
	admin := api.Group("/admin", requireAdmin)
	admin.GET("/me", adminHandler.Me)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/status", adminHandler.SetUserStatus)
	admin.GET("/tickets", ticketHandler.ListAll)
	admin.GET("/complaints", complaintHandler.List)
	admin.PATCH("/complaints/:id", complaintHandler.Respond)
	admin.GET("/news", newsHandler.ListAll)
	admin.GET("/audit", adminHandler.Audit)

	// --- Club content: public reads, admin writes ---
	api.GET("/matches", matchHandler.List, optionalAuth)
	api.GET("/matches/:id", matchHandler.Get)
	api.POST("/matches", matchHandler.Create, requireAdmin)
	api.PUT("/matches/:id", matchHandler.Update, requireAdmin)
	api.DELETE("/matches/:id", matchHandler.Delete, requireAdmin)

	api.GET("/players", playerHandler.List)
	api.GET("/players/:id", playerHandler.Get)
	api.POST("/players", playerHandler.Create, requireAdmin)
	api.PUT("/players/:id", playerHandler.Update, requireAdmin)
	api.DELETE("/players/:id", playerHandler.Delete, requireAdmin)

	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.POST("/products", productHandler.Create, requireAdmin)
	api.PUT("/products/:id", productHandler.Update, requireAdmin)
	api.DELETE("/products/:id", productHandler.Delete, requireAdmin)

	api.GET("/news", newsHandler.List)
	api.GET("/news/:id", newsHandler.Get)
	api.POST("/news", newsHandler.Create, requireAdmin)
	api.PUT("/news/:id", newsHandler.Update, requireAdmin)
	api.DELETE("/news/:id", newsHandler.Delete, requireAdmin)

	// --- Tickets ---
	api.POST("/tickets", ticketHandler.Purchase, requireUser, usersOnly)
	api.GET("/tickets/mine", ticketHandler.Mine, requireUser, usersOnly)
	api.PATCH("/tickets/:id/cancel", ticketHandler.Cancel, requireUser, usersOnly)

	// --- Complaints ---
	api.POST("/complaints", complaintHandler.File, requireUser, usersOnly)
	api.GET("/complaints/mine", complaintHandler.Mine, requireUser, usersOnly)

	// --- Uploads ---
	api.POST("/uploads/:type", handler.Uploaded, requireUser, upload)

	return e
}
