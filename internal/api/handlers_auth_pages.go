package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	flash := handler.popFlashCookie(c)
	return handler.render(c, "login", fiber.Map{
		"Title":      localizedPageTitle(currentMessages(c), "meta.title.login", "Watering Diary | Sign in"),
		"LoginValue": flash.LoginValue,
		"Banners":    bannersFromFlash(flash),
	})
}

func (handler *Handler) ShowRegisterPage(c *fiber.Ctx) error {
	flash := handler.popFlashCookie(c)
	return handler.render(c, "register", fiber.Map{
		"Title":      localizedPageTitle(currentMessages(c), "meta.title.register", "Watering Diary | Sign up"),
		"LoginValue": flash.LoginValue,
		"Banners":    bannersFromFlash(flash),
	})
}
