package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/utils"
)

// FeedbackHandler exposes feedback endpoints.
type FeedbackHandler struct {
	service service.FeedbackService
	logger  zerolog.Logger
}

// NewFeedbackHandler constructs a feedback handler.
func NewFeedbackHandler(service service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		logger:  logger.With().Str("component", "feedback_handler").Logger(),
	}
}

// Register wires feedback routes.
func (h *FeedbackHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
	router.Get("", h.list)
	router.Get("/export", h.export)
	router.Post("/mailto", h.mailto)
}

func (h *FeedbackHandler) submit(c *fiber.Ctx) error {
	var payload dto.FeedbackRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Submit(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to record feedback")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to record feedback")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "feedback recorded", result)
}

func (h *FeedbackHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "feedback retrieved", h.service.List(c.Context()))
}

// export returns the feedback log as a standalone JSON download.
func (h *FeedbackHandler) export(c *fiber.Ctx) error {
	entries := h.service.List(c.Context())

	filename := fmt.Sprintf("feedback-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(entries)
}

func (h *FeedbackHandler) mailto(c *fiber.Ctx) error {
	var payload dto.FeedbackRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Mailto(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compose mailto link")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compose mailto link")
	}

	return utils.SendSuccess(c, "mailto link composed", result)
}
