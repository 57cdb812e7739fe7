package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/utils"
)

// AdminHandler exposes whole-document operations.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register wires admin routes.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Post("/reset", h.reset)
	router.Get("/export", h.export)
}

func (h *AdminHandler) reset(c *fiber.Ctx) error {
	result := h.service.Reset(c.Context())
	requestLogger(h.logger, c).Warn().Msg("document reset requested")
	return utils.SendSuccess(c, "document reset", result)
}

// export streams the whole document as a JSON backup.
func (h *AdminHandler) export(c *fiber.Ctx) error {
	doc := h.service.Export(c.Context())

	filename := fmt.Sprintf("homeschoolhq-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(doc)
}
