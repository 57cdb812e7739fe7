package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/utils"
)

// StudentHandler exposes roster endpoints.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs a student handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register wires student routes.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.upsert)
	// Fiber matches in registration order; the literal segment must come
	// before the wildcard.
	router.Put("/active", h.setActive)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	result := h.service.List(c.Context())
	return utils.SendSuccess(c, "students retrieved", result)
}

func (h *StudentHandler) upsert(c *fiber.Ctx) error {
	var payload dto.StudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.service.Upsert(c.Context(), payload)
	if err != nil {
		return h.mapError(c, err, "failed to save student")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student saved", student)
}

func (h *StudentHandler) update(c *fiber.Ctx) error {
	var payload dto.StudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	payload.ID = c.Params("id")

	student, err := h.service.Upsert(c.Context(), payload)
	if err != nil {
		return h.mapError(c, err, "failed to save student")
	}
	return utils.SendSuccess(c, "student saved", student)
}

func (h *StudentHandler) remove(c *fiber.Ctx) error {
	if err := h.service.Remove(c.Context(), c.Params("id")); err != nil {
		return h.mapError(c, err, "failed to remove student")
	}
	return utils.SendSuccess(c, "student removed", nil)
}

func (h *StudentHandler) setActive(c *fiber.Ctx) error {
	var payload dto.ActiveStudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.SetActive(c.Context(), payload); err != nil {
		return h.mapError(c, err, "failed to switch student")
	}
	return utils.SendSuccess(c, "active student updated", payload)
}

func (h *StudentHandler) mapError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(message)
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}
}
