package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/handler"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Auth       *handler.AuthHandler
	Channel    *handler.ChannelHandler
	Automation *handler.AutomationHandler
	Activity   *handler.ActivityHandler
	Stats      *handler.StatsHandler
	Status     *handler.StatusHandler
	Queue      *handler.QueueHandler
	Health     *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics sit outside the API group
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	readLimit := middleware.NewReadRateLimiter().Handler()
	createLimit := middleware.NewChannelCreateRateLimiter().Handler()
	syncLimit := middleware.NewSyncRateLimiter().Handler()
	automationLimit := middleware.NewAutomationRateLimiter().Handler()

	api := app.Group("/api")

	// OAuth account flow
	api.Get("/auth/url", h.Auth.GetAuthURL)
	api.Get("/auth/callback", h.Auth.Callback)
	api.Get("/auth/status", h.Auth.Status)
	api.Post("/auth/disconnect", h.Auth.Disconnect)

	// Channel routes
	api.Get("/channels", h.Channel.List, readLimit)
	api.Post("/channels", h.Channel.Create, createLimit)
	api.Delete("/channels/:id", h.Channel.Delete)
	api.Get("/channels/:id/status", h.Channel.Status, readLimit)
	api.Get("/channels/:id/videos", h.Channel.Videos, readLimit)
	api.Post("/channels/:id/sync", h.Channel.Sync, syncLimit)
	api.Post("/channels/:id/process", h.Channel.Process, syncLimit)

	// Automation routes
	api.Post("/automation/start", h.Automation.Start, automationLimit)
	api.Post("/automation/stop", h.Automation.Stop, automationLimit)
	api.Post("/automation/pause", h.Automation.Pause, automationLimit)
	api.Get("/automation/status", h.Automation.Status, readLimit)
	api.Get("/automation/settings", h.Automation.GetSettings, readLimit)
	api.Put("/automation/settings", h.Automation.UpdateSettings, automationLimit)

	// Queue routes
	api.Post("/queue/:id/retry", h.Queue.Retry, automationLimit)

	// Dashboard feeds
	api.Get("/activity", h.Activity.List, readLimit)
	api.Get("/stats", h.Stats.GetStats, readLimit)
	api.Get("/system/status", h.Status.Get, readLimit)
}
