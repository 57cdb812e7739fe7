package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/utils"
)

// LessonHandler exposes lesson and template endpoints.
type LessonHandler struct {
	service service.LessonService
	logger  zerolog.Logger
}

// NewLessonHandler constructs a lesson handler.
func NewLessonHandler(service service.LessonService, logger zerolog.Logger) *LessonHandler {
	return &LessonHandler{
		service: service,
		logger:  logger.With().Str("component", "lesson_handler").Logger(),
	}
}

// Register wires lesson routes.
func (h *LessonHandler) Register(router fiber.Router) {
	router.Get("/week", h.week)
	router.Get("/day/:date", h.day)
	router.Post("", h.add)
	router.Patch("/:date/:id", h.update)
	router.Delete("/:date/:id", h.remove)
}

// RegisterTemplates wires template routes.
func (h *LessonHandler) RegisterTemplates(router fiber.Router) {
	router.Get("", h.templates)
	router.Post("", h.addTemplate)
	router.Post("/:id/apply", h.applyTemplate)
}

func (h *LessonHandler) week(c *fiber.Ctx) error {
	anchor, err := parseDayQuery(c, "date")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
	}

	result := h.service.Week(c.Context(), anchor)
	return utils.SendSuccess(c, "week retrieved", result)
}

func (h *LessonHandler) day(c *fiber.Ctx) error {
	day, err := parseDayParam(c, "date")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
	}

	lessons := h.service.Day(c.Context(), day)
	return utils.SendSuccess(c, "lessons retrieved", lessons)
}

func (h *LessonHandler) add(c *fiber.Ctx) error {
	var payload dto.LessonRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	lesson, err := h.service.Add(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to add lesson")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to add lesson")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "lesson added", lesson)
}

func (h *LessonHandler) update(c *fiber.Ctx) error {
	var payload dto.LessonUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	lesson, err := h.service.Update(c.Context(), c.Params("date"), c.Params("id"), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLessonNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update lesson")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update lesson")
		}
	}

	return utils.SendSuccess(c, "lesson updated", lesson)
}

func (h *LessonHandler) remove(c *fiber.Ctx) error {
	if err := h.service.Remove(c.Context(), c.Params("date"), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to remove lesson")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove lesson")
	}
	return utils.SendSuccess(c, "lesson removed", nil)
}

func (h *LessonHandler) templates(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "templates retrieved", h.service.Templates(c.Context()))
}

func (h *LessonHandler) addTemplate(c *fiber.Ctx) error {
	var payload dto.TemplateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	template, err := h.service.AddTemplate(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to add template")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to add template")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "template added", template)
}

func (h *LessonHandler) applyTemplate(c *fiber.Ctx) error {
	var payload dto.ApplyTemplateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.ApplyTemplate(c.Context(), c.Params("id"), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "template not found")
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to apply template")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to apply template")
		}
	}

	return utils.SendSuccess(c, "template applied", result)
}
