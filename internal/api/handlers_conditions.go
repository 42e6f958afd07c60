package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wateringdiary/webapp/internal/models"
	"github.com/wateringdiary/webapp/internal/services"
)

const conditionsPath = "/conditions"

type conditionFormView struct {
	Editing   bool
	Action    string
	Condition models.Condition
}

func (handler *Handler) ShowConditions(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return redirectOrJSON(c, loginPath)
	}
	messages := currentMessages(c)
	flash := handler.popFlashCookie(c)

	var extra []Banner
	page := services.NewConditionsPage(handler.api, session.UserID)
	if err := page.Reload(c.UserContext()); err != nil {
		handler.logAPIFailure(c, err)
		extra = append(extra, newBanner(bannerKindError, loadFailureMessage(messages, err)))
	}

	var form *conditionFormView
	switch {
	case c.Query("edit") != "":
		conditionID, ok := parsePositiveID(c.Query("edit"))
		if !ok {
			break
		}
		condition, err := handler.authorizeCondition(c, session, conditionID)
		if errors.Is(err, services.ErrNotOwned) {
			return handler.rejectForeign(c, session)
		}
		if err != nil {
			handler.logAPIFailure(c, err)
			extra = append(extra, newBanner(bannerKindError, apiFailureMessage(messages, err, "errors.load.condition")))
			break
		}
		form = &conditionFormView{
			Editing:   true,
			Action:    conditionsPath + "/" + strconv.FormatInt(condition.ID, 10),
			Condition: condition,
		}
	case c.Query("add") != "":
		form = &conditionFormView{
			Action:    conditionsPath,
			Condition: models.Condition{Date: services.TodayString(handler.now(), handler.location)},
		}
	}

	return handler.render(c, "conditions", fiber.Map{
		"Title":      localizedPageTitle(messages, "meta.title.conditions", "Watering Diary | Microclimate"),
		"Conditions": page.View(),
		"Form":       form,
		"Banners":    bannersFromFlash(flash, extra...),
	})
}

func (handler *Handler) CreateCondition(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	formPath := conditionsPath + "?add=1"

	input := conditionInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.validationFailure(c, err, formPath)
	}
	payload, err := parseConditionCreateInput(input, session.UserID)
	if err != nil {
		return handler.validationFailure(c, err, formPath)
	}

	if _, err := handler.api.CreateCondition(c.UserContext(), payload); err != nil {
		return handler.apiFailure(c, err, "conditions.error.create", formPath)
	}
	return handler.respondFormSuccess(c, translateMessage(currentMessages(c), "conditions.success.created"), conditionsPath)
}

func (handler *Handler) UpdateCondition(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	conditionID, ok := parsePathID(c, "id")
	if !ok {
		return handler.NotFound(c)
	}
	formPath := conditionsPath + "?edit=" + strconv.FormatInt(conditionID, 10)

	input := conditionInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.validationFailure(c, err, formPath)
	}
	patch, err := parseConditionPatchInput(input)
	if err != nil {
		return handler.validationFailure(c, err, formPath)
	}
	if _, err := handler.authorizeCondition(c, session, conditionID); err != nil {
		return handler.ownershipFailure(c, session, err, "conditions.error.update", formPath)
	}

	if _, err := handler.api.UpdateCondition(c.UserContext(), conditionID, patch); err != nil {
		return handler.apiFailure(c, err, "conditions.error.update", formPath)
	}
	return handler.respondFormSuccess(c, translateMessage(currentMessages(c), "conditions.success.updated"), conditionsPath)
}

func (handler *Handler) DeleteCondition(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	conditionID, ok := parsePathID(c, "id")
	if !ok {
		return handler.NotFound(c)
	}
	if _, err := handler.authorizeCondition(c, session, conditionID); err != nil {
		return handler.ownershipFailure(c, session, err, "conditions.error.delete", conditionsPath)
	}

	if err := handler.api.DeleteCondition(c.UserContext(), conditionID); err != nil {
		handler.logAPIFailure(c, err)
		return handler.respondFormError(c, apiFailureStatus(err), translateMessage(currentMessages(c), "conditions.error.delete"), conditionsPath)
	}
	return handler.respondFormSuccess(c, translateMessage(currentMessages(c), "conditions.success.deleted"), conditionsPath)
}
