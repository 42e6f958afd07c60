package api

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) setFlashCookie(c *fiber.Ctx, payload FlashPayload) {
	payload = normalizeFlashPayload(payload)
	if payload == (FlashPayload{}) {
		handler.clearFlashCookie(c)
		return
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(serialized),
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(5 * time.Minute),
	})
}

func (handler *Handler) flashError(c *fiber.Ctx, message string) {
	handler.setFlashCookie(c, FlashPayload{Error: message})
}

func (handler *Handler) flashSuccess(c *fiber.Ctx, message string) {
	handler.setFlashCookie(c, FlashPayload{Success: message})
}

func (handler *Handler) popFlashCookie(c *fiber.Ctx) FlashPayload {
	raw := strings.TrimSpace(c.Cookies(flashCookieName))
	if raw == "" {
		return FlashPayload{}
	}
	handler.clearFlashCookie(c)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return FlashPayload{}
	}

	payload := FlashPayload{}
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return FlashPayload{}
	}
	return normalizeFlashPayload(payload)
}

func (handler *Handler) clearFlashCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func normalizeFlashPayload(payload FlashPayload) FlashPayload {
	payload.Error = strings.TrimSpace(payload.Error)
	payload.Success = strings.TrimSpace(payload.Success)
	payload.Warning = strings.TrimSpace(payload.Warning)
	payload.LoginValue = strings.TrimSpace(payload.LoginValue)
	return payload
}

// bannersFromFlash turns the popped payload plus any banners raised while
// building the page into render order: errors first, then warnings, then
// success. Within a kind the latest message wins.
func bannersFromFlash(flash FlashPayload, extra ...Banner) []Banner {
	byKind := map[string]string{
		bannerKindError:   flash.Error,
		bannerKindWarning: flash.Warning,
		bannerKindSuccess: flash.Success,
	}
	for _, banner := range extra {
		if strings.TrimSpace(banner.Message) != "" {
			byKind[banner.Kind] = banner.Message
		}
	}

	banners := make([]Banner, 0, len(byKind))
	for _, kind := range []string{bannerKindError, bannerKindWarning, bannerKindSuccess} {
		if message := byKind[kind]; message != "" {
			banners = append(banners, newBanner(kind, message))
		}
	}
	return banners
}

const (
	bannerKindError   = "error"
	bannerKindWarning = "warning"
	bannerKindSuccess = "success"
)

func newBanner(kind string, message string) Banner {
	dismissAfter := errorBannerDismissAfter
	if kind == bannerKindSuccess {
		dismissAfter = successBannerDismissAfter
	}
	return Banner{Kind: kind, Message: message, DismissAfter: dismissAfter.Milliseconds()}
}
