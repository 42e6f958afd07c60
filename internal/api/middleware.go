package api

import "github.com/gofiber/fiber/v2"

const (
	sessionCookieName   = "wd_session"
	languageCookieName  = "wd_lang"
	flashCookieName     = "wd_flash"
	CSRFCookieName      = "wd_csrf"
	CSRFContextKey      = "csrf"
	contextSessionKey   = "current_session"
	contextLanguageKey  = "current_language"
	contextMessagesKey  = "current_messages"
	contextRequestIDKey = "request_id"
)

func currentSession(c *fiber.Ctx) (*Session, bool) {
	session, ok := c.Locals(contextSessionKey).(*Session)
	return session, ok && session != nil
}
