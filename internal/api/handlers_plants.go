package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wateringdiary/webapp/internal/services"
)

const plantsPath = "/plants"

func (handler *Handler) ShowPlants(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return redirectOrJSON(c, loginPath)
	}
	messages := currentMessages(c)
	language := handler.language(c)
	flash := handler.popFlashCookie(c)

	var extra []Banner
	page := services.NewPlantsPage(handler.api, session.UserID)
	loadErr := page.Reload(c.UserContext())
	if loadErr != nil {
		failures := services.LoadFailures(loadErr)
		for _, failure := range failures {
			handler.logAPIFailure(c, failure)
		}
		extra = append(extra, newBanner(bannerKindError, loadFailureMessage(messages, failures[0])))
	}

	var form *plantFormView
	switch {
	case c.Query("edit") != "":
		plantID, ok := parsePositiveID(c.Query("edit"))
		if !ok {
			break
		}
		plant, err := services.OwnedPlant(page.Plants(), session.UserID, plantID)
		if err != nil {
			if loadErr != nil {
				break
			}
			return handler.rejectForeign(c, session)
		}
		form = &plantFormView{Editing: true, Action: plantsPath + "/" + strconv.FormatInt(plant.ID, 10), Plant: plant}
	case c.Query("add") != "":
		form = &plantFormView{Action: plantsPath}
	}

	unknown := unknownLabel(messages)
	return handler.render(c, "plants", fiber.Map{
		"Title":      localizedPageTitle(messages, "meta.title.plants", "Watering Diary | Plants"),
		"Rows":       buildPlantRows(page.Plants(), page.PlantTypes(), page.Materials(), unknown),
		"PlantTypes": services.SortPlantTypes(page.PlantTypes(), language),
		"Materials":  services.SortMaterials(page.Materials(), language),
		"Form":       form,
		"Banners":    bannersFromFlash(flash, extra...),
	})
}

func (handler *Handler) CreatePlant(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	formPath := plantsPath + "?add=1"

	input := plantInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.validationFailure(c, err, formPath)
	}
	payload, err := parsePlantCreateInput(input, session.UserID)
	if err != nil {
		return handler.validationFailure(c, err, formPath)
	}

	if _, err := handler.api.CreateUserPlant(c.UserContext(), payload); err != nil {
		return handler.apiFailure(c, err, "plants.error.create", formPath)
	}
	return handler.respondFormSuccess(c, translateMessage(currentMessages(c), "plants.success.created"), plantsPath)
}

func (handler *Handler) UpdatePlant(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	plantID, ok := parsePathID(c, "id")
	if !ok {
		return handler.NotFound(c)
	}
	formPath := plantsPath + "?edit=" + strconv.FormatInt(plantID, 10)

	input := plantInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.validationFailure(c, err, formPath)
	}
	patch, err := parsePlantPatchInput(input)
	if err != nil {
		return handler.validationFailure(c, err, formPath)
	}
	if _, err := handler.authorizePlant(c, session, plantID); err != nil {
		return handler.ownershipFailure(c, session, err, "plants.error.update", formPath)
	}

	if _, err := handler.api.UpdateUserPlant(c.UserContext(), plantID, patch); err != nil {
		return handler.apiFailure(c, err, "plants.error.update", formPath)
	}
	return handler.respondFormSuccess(c, translateMessage(currentMessages(c), "plants.success.updated"), plantsPath)
}

func (handler *Handler) DeletePlant(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	plantID, ok := parsePathID(c, "id")
	if !ok {
		return handler.NotFound(c)
	}
	if _, err := handler.authorizePlant(c, session, plantID); err != nil {
		return handler.ownershipFailure(c, session, err, "plants.error.delete", plantsPath)
	}

	if err := handler.api.DeleteUserPlant(c.UserContext(), plantID); err != nil {
		handler.logAPIFailure(c, err)
		return handler.respondFormError(c, apiFailureStatus(err), translateMessage(currentMessages(c), "plants.error.delete"), plantsPath)
	}
	return handler.respondFormSuccess(c, translateMessage(currentMessages(c), "plants.success.deleted"), plantsPath)
}
