package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RouteKind int

const (
	// RoutePublic is reachable with or without a session.
	RoutePublic RouteKind = iota
	// RoutePublicOnly is the login and registration pages.
	RoutePublicOnly
	RouteProtected
)

const (
	loginPath   = "/login"
	profilePath = "/profile"
)

type RouteDecision struct {
	Allow    bool
	Redirect string
}

// GuardRoute decides whether a request with the given session may reach a
// route of kind.
func GuardRoute(kind RouteKind, session *Session) RouteDecision {
	switch {
	case kind == RouteProtected && session == nil:
		return RouteDecision{Redirect: loginPath}
	case kind == RoutePublicOnly && session != nil:
		return RouteDecision{Redirect: profilePath}
	default:
		return RouteDecision{Allow: true}
	}
}

func (handler *Handler) guard(kind RouteKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := handler.authenticateRequest(c)
		if errors.Is(err, errSessionLookupFailed) {
			handler.logger.Error("session lookup failed",
				zap.String("request_id", requestID(c)),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return apiError(c, fiber.StatusInternalServerError, "session store unavailable")
		}
		if err != nil {
			session = nil
			if c.Cookies(sessionCookieName) != "" {
				handler.clearSessionCookie(c)
			}
		}

		decision := GuardRoute(kind, session)
		if !decision.Allow {
			return handler.respondGuardRedirect(c, decision)
		}
		if session != nil {
			c.Locals(contextSessionKey, session)
		}
		return c.Next()
	}
}

func (handler *Handler) respondGuardRedirect(c *fiber.Ctx, decision RouteDecision) error {
	if decision.Redirect == loginPath && acceptsJSON(c) && !isHTMX(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	return redirectOrJSON(c, decision.Redirect)
}
