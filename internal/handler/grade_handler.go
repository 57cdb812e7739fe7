package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/utils"
)

// GradeHandler exposes gradebook endpoints.
type GradeHandler struct {
	service service.GradeService
	logger  zerolog.Logger
}

// NewGradeHandler constructs a grade handler.
func NewGradeHandler(service service.GradeService, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		service: service,
		logger:  logger.With().Str("component", "grade_handler").Logger(),
	}
}

// Register wires gradebook routes.
func (h *GradeHandler) Register(router fiber.Router) {
	router.Get("/:studentId", h.subjects)
	router.Get("/:studentId/transcript", h.transcript)
	router.Post("/assignments", h.addAssignment)
	router.Delete("/:studentId/:subject/:id", h.removeAssignment)
}

func (h *GradeHandler) subjects(c *fiber.Ctx) error {
	subjects, err := h.service.Subjects(c.Context(), c.Params("studentId"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list grades")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list grades")
	}
	return utils.SendSuccess(c, "grades retrieved", subjects)
}

func (h *GradeHandler) transcript(c *fiber.Ctx) error {
	transcript, err := h.service.Transcript(c.Context(), c.Params("studentId"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build transcript")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build transcript")
	}
	return utils.SendSuccess(c, "transcript retrieved", transcript)
}

func (h *GradeHandler) addAssignment(c *fiber.Ctx) error {
	var payload dto.AssignmentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	assignment, err := h.service.AddAssignment(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record assignment")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record assignment")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment recorded", assignment)
}

func (h *GradeHandler) removeAssignment(c *fiber.Ctx) error {
	err := h.service.RemoveAssignment(c.Context(), c.Params("studentId"), c.Params("subject"), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to remove assignment")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove assignment")
	}
	return utils.SendSuccess(c, "assignment removed", nil)
}
