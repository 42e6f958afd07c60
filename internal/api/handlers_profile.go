package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wateringdiary/webapp/internal/models"
)

func (handler *Handler) ShowProfile(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return redirectOrJSON(c, loginPath)
	}
	messages := currentMessages(c)
	flash := handler.popFlashCookie(c)

	var extra []Banner
	user, err := handler.api.GetUser(c.UserContext(), session.UserID)
	loaded := err == nil
	if err != nil {
		handler.logAPIFailure(c, err)
		extra = append(extra, newBanner(bannerKindError, loadFailureMessage(messages, err)))
		user = models.User{ID: session.UserID, Login: session.Login}
	}

	return handler.render(c, "profile", fiber.Map{
		"Title":   localizedPageTitle(messages, "meta.title.profile", "Watering Diary | Profile"),
		"User":    user,
		"Loaded":  loaded,
		"Editing": loaded && c.Query("edit") != "",
		"Banners": bannersFromFlash(flash, extra...),
	})
}

// UpdateProfile sends only the filled fields; an empty password keeps the
// current one.
func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.validationFailure(c, err, profileEditPath)
	}
	patch, err := parseProfileInput(input)
	if err != nil {
		return handler.validationFailure(c, err, profileEditPath)
	}

	if _, err := handler.api.UpdateUser(c.UserContext(), session.UserID, patch); err != nil {
		return handler.apiFailure(c, err, "profile.error.update", profileEditPath)
	}
	return handler.respondFormSuccess(c, translateMessage(currentMessages(c), "profile.success.updated"), profilePath)
}

const profileEditPath = profilePath + "?edit=1"
