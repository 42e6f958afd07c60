package services

import (
	"errors"

	"github.com/wateringdiary/webapp/internal/models"
)

// ErrNotOwned reports an entity that does not belong to the signed-in user.
// Callers answer it exactly like a missing entity.
var ErrNotOwned = errors.New("entity not owned by user")

// OwnedPlant finds plantID among plants and checks that it belongs to userID.
// plants is expected to be the user's own plant list.
func OwnedPlant(plants []models.UserPlant, userID int64, plantID int64) (models.UserPlant, error) {
	plant, ok := PlantByID(plants, plantID)
	if !ok || plant.UserID != userID {
		return models.UserPlant{}, ErrNotOwned
	}
	return plant, nil
}

// OwnedRecord checks a record through the plant it was written for.
func OwnedRecord(plants []models.UserPlant, userID int64, record models.WateringRecord) error {
	_, err := OwnedPlant(plants, userID, record.UserPlantID)
	return err
}

func OwnedCondition(userID int64, condition models.Condition) error {
	if condition.UserID != userID {
		return ErrNotOwned
	}
	return nil
}
