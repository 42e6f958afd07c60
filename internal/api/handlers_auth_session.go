package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wateringdiary/webapp/internal/apiclient"
)

func (handler *Handler) Login(c *fiber.Ctx) error {
	messages := currentMessages(c)

	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondAuthError(c, fiber.StatusBadRequest, translateMessage(messages, "validation.invalid_input"))
	}
	credentials, err := parseLoginInput(input)
	if err != nil {
		return handler.respondAuthError(c, fiber.StatusBadRequest, translateMessage(messages, validationKeyOrDefault(err)))
	}

	result, err := handler.api.Login(c.UserContext(), credentials.Login, credentials.Password)
	if err != nil {
		handler.logAPIFailure(c, err)
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return handler.respondAuthError(c, fiber.StatusUnauthorized, apiFailureMessage(messages, err, "auth.error.invalid_credentials"))
		}
		return handler.respondAuthError(c, apiFailureStatus(err), apiFailureMessage(messages, err, "auth.error.login_failed"))
	}

	login := result.Login
	if login == "" {
		login = credentials.Login
	}
	if _, err := handler.issueSession(c, result.UserID, login); err != nil {
		handler.logger.Error("issue session", zap.String("request_id", requestID(c)), zap.Error(err))
		return handler.respondAuthError(c, fiber.StatusInternalServerError, translateMessage(messages, "auth.error.login_failed"))
	}
	return redirectOrJSON(c, profilePath)
}

// Register creates the account and signs the new user in right away.
func (handler *Handler) Register(c *fiber.Ctx) error {
	messages := currentMessages(c)

	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondAuthError(c, fiber.StatusBadRequest, translateMessage(messages, "validation.invalid_input"))
	}
	payload, err := parseRegisterInput(input)
	if err != nil {
		return handler.respondAuthError(c, fiber.StatusBadRequest, translateMessage(messages, validationKeyOrDefault(err)))
	}

	user, err := handler.api.CreateUser(c.UserContext(), payload)
	if err != nil {
		handler.logAPIFailure(c, err)
		return handler.respondAuthError(c, apiFailureStatus(err), apiFailureMessage(messages, err, "auth.error.register_failed"))
	}

	login := user.Login
	if login == "" {
		login = payload.Login
	}
	if _, err := handler.issueSession(c, user.ID, login); err != nil {
		handler.logger.Error("issue session", zap.String("request_id", requestID(c)), zap.Error(err))
		return handler.respondAuthError(c, fiber.StatusInternalServerError, translateMessage(messages, "auth.error.register_failed"))
	}
	return redirectOrJSON(c, profilePath)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	if session, ok := currentSession(c); ok {
		handler.revokeSession(c.UserContext(), session)
	}
	handler.clearSessionCookie(c)
	return redirectOrJSON(c, loginPath)
}

func validationKeyOrDefault(err error) string {
	if key, ok := validationMessageKey(err); ok {
		return key
	}
	return "validation.invalid_input"
}
