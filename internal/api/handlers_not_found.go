package api

import (
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if acceptsJSON(c) {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	messages := currentMessages(c)
	if isHTMX(c) {
		message := localizedPageTitle(messages, "not_found.title", "Page not found")
		c.Status(fiber.StatusNotFound)
		return c.SendString(fmt.Sprintf("<div class=\"banner banner-error\">%s</div>", template.HTMLEscapeString(message)))
	}

	session := handler.optionalSession(c)
	primaryPath := loginPath
	primaryLabelKey := "not_found.action_login"
	if session != nil {
		primaryPath = profilePath
		primaryLabelKey = "not_found.action_profile"
	}

	c.Status(fiber.StatusNotFound)
	return handler.render(c, "not_found", fiber.Map{
		"Title":           localizedPageTitle(messages, "meta.title.not_found", "Watering Diary | Page Not Found"),
		"Session":         session,
		"PrimaryPath":     primaryPath,
		"PrimaryLabelKey": primaryLabelKey,
	})
}
