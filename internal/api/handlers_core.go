package api

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	tmpl, ok := handler.templates[name]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}
	payload := handler.withTemplateDefaults(c, data)
	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", payload); err != nil {
		handler.logger.Error("render template", zap.String("template", name), zap.String("request_id", requestID(c)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render template")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

func (handler *Handler) renderPartial(c *fiber.Ctx, name string, data fiber.Map) error {
	tmpl, ok := handler.partials[name]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("partial not found")
	}
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Messages"]; !ok {
		data["Messages"] = currentMessages(c)
	}
	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, name, data); err != nil {
		handler.logger.Error("render partial", zap.String("partial", name), zap.String("request_id", requestID(c)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render partial")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

// ErrorHandler is the fiber fallback for errors no handler turned into a
// response.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	if status == fiber.StatusNotFound {
		return handler.NotFound(c)
	}

	handler.logger.Error("unhandled request error",
		zap.String("request_id", requestID(c)),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	if status >= fiber.StatusInternalServerError {
		return apiError(c, status, "internal error")
	}
	return apiError(c, status, err.Error())
}
