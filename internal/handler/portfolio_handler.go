package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/service"
	"github.com/homeschoolhq/hq-go-api/internal/utils"
)

// PortfolioHandler exposes portfolio endpoints.
type PortfolioHandler struct {
	service service.PortfolioService
	logger  zerolog.Logger
}

// NewPortfolioHandler constructs a portfolio handler.
func NewPortfolioHandler(service service.PortfolioService, logger zerolog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		service: service,
		logger:  logger.With().Str("component", "portfolio_handler").Logger(),
	}
}

// Register wires portfolio routes.
func (h *PortfolioHandler) Register(router fiber.Router) {
	router.Get("/:studentId", h.list)
	router.Post("", h.add)
	router.Post("/artifacts", h.uploadArtifact)
	router.Delete("/:studentId/:id", h.remove)
}

func (h *PortfolioHandler) list(c *fiber.Ctx) error {
	items, err := h.service.List(c.Context(), c.Params("studentId"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list portfolio")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list portfolio")
	}
	return utils.SendSuccess(c, "portfolio retrieved", items)
}

func (h *PortfolioHandler) add(c *fiber.Ctx) error {
	var payload dto.PortfolioItemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Add(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to add portfolio item")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to add portfolio item")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "portfolio item added", item)
}

func (h *PortfolioHandler) uploadArtifact(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	result, err := h.service.UploadArtifact(c.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArtifactUploadsDisabled):
			return utils.SendError(c, fiber.StatusNotImplemented, "artifact uploads are not configured")
		case errors.Is(err, service.ErrArtifactTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "artifact too large")
		case errors.Is(err, service.ErrArtifactTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "artifact type not allowed")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to upload artifact")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to upload artifact")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "artifact uploaded", result)
}

func (h *PortfolioHandler) remove(c *fiber.Ctx) error {
	err := h.service.Remove(c.Context(), c.Params("studentId"), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrPortfolioItemNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "portfolio item not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to remove portfolio item")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove portfolio item")
	}
	return utils.SendSuccess(c, "portfolio item removed", nil)
}
