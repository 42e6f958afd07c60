package api

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

func translateMessagef(messages map[string]string, key string, args ...any) string {
	return fmt.Sprintf(translateMessage(messages, key), args...)
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return map[string]string{}
	}
	return messages
}

func (handler *Handler) language(c *fiber.Ctx) string {
	if language := currentLanguage(c); language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	messages := currentMessages(c)
	if _, ok := data["Messages"]; !ok {
		data["Messages"] = messages
	}

	if _, ok := data["Lang"]; !ok {
		data["Lang"] = handler.language(c)
	}

	if _, ok := data["CurrentPath"]; !ok {
		data["CurrentPath"] = currentPathWithQuery(c)
	}

	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"] = csrfToken(c)
	}

	if _, ok := data["Session"]; !ok {
		if session, found := currentSession(c); found {
			data["Session"] = session
		}
	}

	if _, ok := data["Banners"]; !ok {
		data["Banners"] = bannersFromFlash(handler.popFlashCookie(c))
	}

	if _, ok := data["UnknownLabel"]; !ok {
		data["UnknownLabel"] = unknownLabel(messages)
	}

	return data
}

func unknownLabel(messages map[string]string) string {
	label := translateMessage(messages, "common.unknown")
	if label == "common.unknown" {
		return "-"
	}
	return label
}

func currentPathWithQuery(c *fiber.Ctx) string {
	path := string(c.Request().URI().RequestURI())
	if path == "" {
		return c.Path()
	}
	return path
}
