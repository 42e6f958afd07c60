package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wateringdiary/webapp/internal/models"
	"github.com/wateringdiary/webapp/internal/services"
)

// The REST API trusts whatever id it is given, so every id taken from a
// path, a query or a form is checked against the session user first.

func (handler *Handler) authorizePlant(c *fiber.Ctx, session *Session, plantID int64) (models.UserPlant, error) {
	plants, err := handler.api.ListUserPlants(c.UserContext(), session.UserID)
	if err != nil {
		return models.UserPlant{}, err
	}
	return services.OwnedPlant(plants, session.UserID, plantID)
}

func (handler *Handler) authorizeRecord(c *fiber.Ctx, session *Session, recordID int64) (models.WateringRecord, error) {
	record, err := handler.api.GetRecord(c.UserContext(), recordID)
	if err != nil {
		return models.WateringRecord{}, err
	}
	plants, err := handler.api.ListUserPlants(c.UserContext(), session.UserID)
	if err != nil {
		return models.WateringRecord{}, err
	}
	if err := services.OwnedRecord(plants, session.UserID, record); err != nil {
		return models.WateringRecord{}, err
	}
	return record, nil
}

func (handler *Handler) authorizeCondition(c *fiber.Ctx, session *Session, conditionID int64) (models.Condition, error) {
	condition, err := handler.api.GetCondition(c.UserContext(), conditionID)
	if err != nil {
		return models.Condition{}, err
	}
	if err := services.OwnedCondition(session.UserID, condition); err != nil {
		return models.Condition{}, err
	}
	return condition, nil
}

func (handler *Handler) rejectForeign(c *fiber.Ctx, session *Session) error {
	handler.logger.Warn("foreign resource rejected",
		zap.String("request_id", requestID(c)),
		zap.Int64("user_id", session.UserID),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	return handler.NotFound(c)
}

// ownershipFailure answers a failed authorize* call on a mutation route.
func (handler *Handler) ownershipFailure(c *fiber.Ctx, session *Session, err error, fallbackKey string, redirectPath string) error {
	if errors.Is(err, services.ErrNotOwned) {
		return handler.rejectForeign(c, session)
	}
	return handler.apiFailure(c, err, fallbackKey, redirectPath)
}
