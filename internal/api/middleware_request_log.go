package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger writes one line per request and propagates X-Request-ID.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		started := time.Now()

		requestID := c.Get(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Locals(contextRequestIDKey, requestID)
		c.Set(requestIDHeader, requestID)

		chainErr := c.Next()
		status := c.Response().StatusCode()
		if chainErr != nil {
			var fiberErr *fiber.Error
			if errors.As(chainErr, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(started)),
			zap.Int("bytes", len(c.Response().Body())),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request", append(fields, zap.Error(chainErr))...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
		return chainErr
	}
}

func requestID(c *fiber.Ctx) string {
	value, _ := c.Locals(contextRequestIDKey).(string)
	return value
}
