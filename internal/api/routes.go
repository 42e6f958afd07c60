package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/", handler.PublicOnly, handler.ShowLoginPage)
	app.Get("/login", handler.PublicOnly, handler.ShowLoginPage)
	app.Post("/login", handler.PublicOnly, handler.Login)
	app.Get("/register", handler.PublicOnly, handler.ShowRegisterPage)
	app.Post("/register", handler.PublicOnly, handler.Register)
	app.Post("/logout", handler.AuthRequired, handler.Logout)

	app.Get("/profile", handler.AuthRequired, handler.ShowProfile)
	app.Post("/profile", handler.AuthRequired, handler.UpdateProfile)

	plants := app.Group(plantsPath, handler.AuthRequired)
	plants.Get("", handler.ShowPlants)
	plants.Post("", handler.CreatePlant)
	plants.Post("/:id", handler.UpdatePlant)
	plants.Post("/:id/delete", handler.DeletePlant)

	diary := app.Group(diaryPath, handler.AuthRequired)
	diary.Get("", handler.ShowDiary)
	diary.Get("/recommendation", handler.DiaryRecommendation)
	diary.Get("/export", handler.ExportDiary)
	diary.Post("", handler.CreateRecord)
	diary.Post("/:id", handler.UpdateRecord)
	diary.Post("/:id/delete", handler.DeleteRecord)

	conditions := app.Group(conditionsPath, handler.AuthRequired)
	conditions.Get("", handler.ShowConditions)
	conditions.Post("", handler.CreateCondition)
	conditions.Post("/:id", handler.UpdateCondition)
	conditions.Post("/:id/delete", handler.DeleteCondition)

	references := app.Group(referencesPath, handler.AuthRequired)
	references.Get("", handler.ShowReferences)
	references.Get("/plant-types/:id", handler.ShowPlantTypeDetail)
	references.Get("/materials/:id", handler.ShowMaterialDetail)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
