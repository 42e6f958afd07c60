package api

import (
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wateringdiary/webapp/internal/apiclient"
)

// respondAuthError sends the visitor back to the auth form with the message
// in the banner and the typed login preserved.
func (handler *Handler) respondAuthError(c *fiber.Ctx, status int, message string) error {
	if acceptsJSON(c) || isHTMX(c) {
		return apiError(c, status, message)
	}

	login := strings.TrimSpace(c.FormValue("login"))
	handler.setFlashCookie(c, FlashPayload{Error: message, LoginValue: login})
	switch c.Path() {
	case "/register":
		return c.Redirect("/register", fiber.StatusSeeOther)
	default:
		return c.Redirect(loginPath, fiber.StatusSeeOther)
	}
}

// respondFormError reports a failed form submission: an HTMX fragment, a
// JSON body, or a flash banner plus a redirect back to the page.
func (handler *Handler) respondFormError(c *fiber.Ctx, status int, message string, redirectPath string) error {
	if isHTMX(c) {
		return c.Status(fiber.StatusOK).SendString(fmt.Sprintf("<div class=\"banner banner-error\">%s</div>", template.HTMLEscapeString(message)))
	}
	if acceptsJSON(c) {
		return apiError(c, status, message)
	}
	handler.flashError(c, message)
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}

func (handler *Handler) respondFormSuccess(c *fiber.Ctx, message string, redirectPath string) error {
	if acceptsJSON(c) && !isHTMX(c) {
		return c.JSON(fiber.Map{"ok": true, "message": message})
	}
	handler.flashSuccess(c, message)
	return redirectOrJSON(c, redirectPath)
}

// validationFailure localizes a local validation error.
func (handler *Handler) validationFailure(c *fiber.Ctx, err error, redirectPath string) error {
	message := translateMessage(currentMessages(c), validationKeyOrDefault(err))
	return handler.respondFormError(c, fiber.StatusBadRequest, message, redirectPath)
}

// apiFailure reports a failed mutation. The server message is shown verbatim
// when the API sent one; otherwise the generic message for the operation.
func (handler *Handler) apiFailure(c *fiber.Ctx, err error, fallbackKey string, redirectPath string) error {
	handler.logAPIFailure(c, err)
	return handler.respondFormError(c, apiFailureStatus(err), apiFailureMessage(currentMessages(c), err, fallbackKey), redirectPath)
}

func apiFailureMessage(messages map[string]string, err error, fallbackKey string) string {
	if message, ok := apiclient.ServerMessage(err); ok {
		return message
	}
	return translateMessage(messages, fallbackKey)
}

func apiFailureStatus(err error) int {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Status >= fiber.StatusBadRequest && apiErr.Status < fiber.StatusInternalServerError {
		return apiErr.Status
	}
	return fiber.StatusBadGateway
}

// loadFailureKey names the resource that could not be loaded.
func loadFailureKey(err error) string {
	resource, ok := apiclient.ResourceOf(err)
	if !ok {
		return "errors.load.generic"
	}
	return "errors.load." + string(resource)
}

func loadFailureMessage(messages map[string]string, err error) string {
	key := loadFailureKey(err)
	message := translateMessage(messages, key)
	if message == key {
		return translateMessage(messages, "errors.load.generic")
	}
	return message
}

func (handler *Handler) logAPIFailure(c *fiber.Ctx, err error) {
	resource, _ := apiclient.ResourceOf(err)
	handler.logger.Warn("api call failed",
		zap.String("request_id", requestID(c)),
		zap.String("path", c.Path()),
		zap.String("resource", string(resource)),
		zap.Error(err),
	)
}

func withQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}
