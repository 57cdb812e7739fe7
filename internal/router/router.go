package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/homeschoolhq/hq-go-api/internal/config"
	"github.com/homeschoolhq/hq-go-api/internal/handler"
	"github.com/homeschoolhq/hq-go-api/internal/middleware"
	"github.com/homeschoolhq/hq-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	StudentHandler    *handler.StudentHandler
	AttendanceHandler *handler.AttendanceHandler
	LessonHandler     *handler.LessonHandler
	PortfolioHandler  *handler.PortfolioHandler
	GradeHandler      *handler.GradeHandler
	ReportHandler     *handler.ReportHandler
	CalendarHandler   *handler.CalendarHandler
	FeedbackHandler   *handler.FeedbackHandler
	SettingsHandler   *handler.SettingsHandler
	AdminHandler      *handler.AdminHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students"))
	}

	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(api.Group("/attendance"))
	}

	if deps.LessonHandler != nil {
		deps.LessonHandler.Register(api.Group("/lessons"))
		deps.LessonHandler.RegisterTemplates(api.Group("/templates"))
	}

	if deps.PortfolioHandler != nil {
		deps.PortfolioHandler.Register(api.Group("/portfolio"))
	}

	if deps.GradeHandler != nil {
		deps.GradeHandler.Register(api.Group("/grades"))
	}

	if deps.ReportHandler != nil {
		deps.ReportHandler.RegisterDashboard(api.Group("/dashboard"))
		deps.ReportHandler.Register(api.Group("/reports"))
	}

	if deps.CalendarHandler != nil {
		deps.CalendarHandler.Register(api.Group("/calendar"))
	}

	if deps.FeedbackHandler != nil {
		feedback := api.Group("/feedback", middleware.RateLimit("feedback", 20, time.Minute))
		deps.FeedbackHandler.Register(feedback)
	}

	if deps.SettingsHandler != nil {
		deps.SettingsHandler.Register(api.Group("/settings"))
	}

	if deps.AdminHandler != nil {
		deps.AdminHandler.Register(api.Group("/admin"))
	}
}
