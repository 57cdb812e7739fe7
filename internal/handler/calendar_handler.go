package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/utils"
)

// CalendarHandler exposes the month grid endpoint.
type CalendarHandler struct {
	service service.CalendarService
	logger  zerolog.Logger
}

// NewCalendarHandler constructs a calendar handler.
func NewCalendarHandler(service service.CalendarService, logger zerolog.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		logger:  logger.With().Str("component", "calendar_handler").Logger(),
	}
}

// Register wires calendar routes.
func (h *CalendarHandler) Register(router fiber.Router) {
	router.Get("/:year/:month", h.month)
}

func (h *CalendarHandler) month(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid year")
	}
	month, err := strconv.Atoi(c.Params("month"))
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid month")
	}

	response, err := h.service.Month(c.Context(), c.Query("studentId"), year, month)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMonth):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid year or month")
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to build calendar")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to build calendar")
		}
	}

	return utils.SendSuccess(c, "calendar retrieved", response)
}
