package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dateutil"
	"github.com/homeschoolhq/hq-go-api/internal/middleware"
)

// parseDayQuery reads a date query parameter, defaulting to today in UTC when
// the parameter is absent.
func parseDayQuery(c *fiber.Ctx, key string) (dateutil.Day, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return dateutil.FromTime(time.Now().UTC()), nil
	}
	return dateutil.Parse(value)
}

// parseDayParam reads a required date path parameter.
func parseDayParam(c *fiber.Ctx, key string) (dateutil.Day, error) {
	return dateutil.Parse(strings.TrimSpace(c.Params(key)))
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
