package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	return handler.guard(RouteProtected)(c)
}

// PublicOnly keeps signed-in users away from the login and registration
// pages.
func (handler *Handler) PublicOnly(c *fiber.Ctx) error {
	return handler.guard(RoutePublicOnly)(c)
}
