package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/utils"
)

// SettingsHandler exposes preference endpoints.
type SettingsHandler struct {
	service service.SettingsService
	logger  zerolog.Logger
}

// NewSettingsHandler constructs a settings handler.
func NewSettingsHandler(service service.SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		logger:  logger.With().Str("component", "settings_handler").Logger(),
	}
}

// Register wires settings routes.
func (h *SettingsHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Put("", h.update)
}

func (h *SettingsHandler) get(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "settings retrieved", h.service.Get(c.Context()))
}

func (h *SettingsHandler) update(c *fiber.Ctx) error {
	var payload dto.SettingsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := h.service.Update(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update settings")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update settings")
	}

	return utils.SendSuccess(c, "settings updated", settings)
}
