package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/utils"
)

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register wires attendance routes.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Post("/toggle", h.toggle)
	router.Get("/summary", h.summary)
}

func (h *AttendanceHandler) toggle(c *fiber.Ctx) error {
	var payload dto.AttendanceToggleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Toggle(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to toggle attendance")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to toggle attendance")
		}
	}

	return utils.SendSuccess(c, "attendance toggled", result)
}

func (h *AttendanceHandler) summary(c *fiber.Ctx) error {
	from, err := parseDayQuery(c, "from")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseDayQuery(c, "to")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid to date")
	}

	summary, err := h.service.Summary(c.Context(), c.Query("studentId"), from, to)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to summarize attendance")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to summarize attendance")
	}

	return utils.SendSuccess(c, "attendance summarized", summary)
}
