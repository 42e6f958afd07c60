package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/wateringdiary/webapp/internal/models"
	"github.com/wateringdiary/webapp/internal/services"
)

// validationError carries the translation key of a local form error. These
// are raised before any request reaches the API.
type validationError struct {
	key string
}

func (err *validationError) Error() string {
	return err.key
}

var (
	errFillAllFields      = &validationError{key: "validation.fill_all_fields"}
	errFillRequiredFields = &validationError{key: "validation.fill_required_fields"}
	errInvalidNumber      = &validationError{key: "validation.invalid_number"}
	errInvalidDate        = &validationError{key: "validation.invalid_date"}
	errInvalidTime        = &validationError{key: "validation.invalid_time"}
	errInvalidSelection   = &validationError{key: "validation.invalid_selection"}
	errNothingToUpdate    = &validationError{key: "validation.nothing_to_update"}
)

func validationMessageKey(err error) (string, bool) {
	var validationErr *validationError
	if !errors.As(err, &validationErr) {
		return "", false
	}
	return validationErr.key, true
}

func parseLoginInput(input loginInput) (models.Credentials, error) {
	credentials := models.Credentials{
		Login:    strings.TrimSpace(input.Login),
		Password: strings.TrimSpace(input.Password),
	}
	if credentials.Login == "" || credentials.Password == "" {
		return models.Credentials{}, errFillAllFields
	}
	return credentials, nil
}

func parseRegisterInput(input registerInput) (models.UserCreate, error) {
	payload := models.UserCreate{
		Login:      strings.TrimSpace(input.Login),
		Password:   strings.TrimSpace(input.Password),
		Surname:    strings.TrimSpace(input.Surname),
		Name:       strings.TrimSpace(input.Name),
		Patronymic: strings.TrimSpace(input.Patronymic),
	}
	if payload.Login == "" || payload.Password == "" {
		return models.UserCreate{}, errFillRequiredFields
	}
	return payload, nil
}

// parseProfileInput keeps only filled fields. The password is not trimmed.
func parseProfileInput(input profileInput) (models.UserPatch, error) {
	patch := models.UserPatch{
		Password:   input.Password,
		Surname:    strings.TrimSpace(input.Surname),
		Name:       strings.TrimSpace(input.Name),
		Patronymic: strings.TrimSpace(input.Patronymic),
	}
	if patch.IsEmpty() {
		return models.UserPatch{}, errNothingToUpdate
	}
	return patch, nil
}

func parsePlantCreateInput(input plantInput, userID int64) (models.UserPlantCreate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || strings.TrimSpace(input.PlantTypeID) == "" || strings.TrimSpace(input.MaterialID) == "" {
		return models.UserPlantCreate{}, errFillRequiredFields
	}

	plantTypeID, ok := parsePositiveID(input.PlantTypeID)
	if !ok {
		return models.UserPlantCreate{}, errInvalidSelection
	}
	materialID, ok := parsePositiveID(input.MaterialID)
	if !ok {
		return models.UserPlantCreate{}, errInvalidSelection
	}

	payload := models.UserPlantCreate{
		UserID:      userID,
		Name:        name,
		PlantTypeID: plantTypeID,
		MaterialID:  materialID,
	}
	var err error
	if payload.High, err = parseOptionalInt(input.High); err != nil {
		return models.UserPlantCreate{}, err
	}
	if payload.PotSize, err = parseOptionalInt(input.PotSize); err != nil {
		return models.UserPlantCreate{}, err
	}
	if payload.SoilLoosenerK, err = parseOptionalInt(input.SoilLoosenerK); err != nil {
		return models.UserPlantCreate{}, err
	}
	return payload, nil
}

func parsePlantPatchInput(input plantInput) (models.UserPlantPatch, error) {
	patch := models.UserPlantPatch{Name: strings.TrimSpace(input.Name)}

	var err error
	if patch.PlantTypeID, err = parseOptionalID(input.PlantTypeID); err != nil {
		return models.UserPlantPatch{}, err
	}
	if patch.MaterialID, err = parseOptionalID(input.MaterialID); err != nil {
		return models.UserPlantPatch{}, err
	}
	if patch.High, err = parseOptionalInt(input.High); err != nil {
		return models.UserPlantPatch{}, err
	}
	if patch.PotSize, err = parseOptionalInt(input.PotSize); err != nil {
		return models.UserPlantPatch{}, err
	}
	if patch.SoilLoosenerK, err = parseOptionalInt(input.SoilLoosenerK); err != nil {
		return models.UserPlantPatch{}, err
	}
	if patch.IsEmpty() {
		return models.UserPlantPatch{}, errNothingToUpdate
	}
	return patch, nil
}

func parseRecordCreateInput(input recordInput) (models.WateringRecordCreate, error) {
	if strings.TrimSpace(input.UserPlantID) == "" ||
		strings.TrimSpace(input.Date) == "" ||
		strings.TrimSpace(input.Time) == "" ||
		strings.TrimSpace(input.VolumeWatering) == "" {
		return models.WateringRecordCreate{}, errFillRequiredFields
	}

	plantID, ok := parsePositiveID(input.UserPlantID)
	if !ok {
		return models.WateringRecordCreate{}, errInvalidSelection
	}
	date, err := parseDateField(input.Date)
	if err != nil {
		return models.WateringRecordCreate{}, err
	}
	clock, err := parseTimeField(input.Time)
	if err != nil {
		return models.WateringRecordCreate{}, err
	}
	volume, err := parseRequiredInt(input.VolumeWatering)
	if err != nil {
		return models.WateringRecordCreate{}, err
	}

	return models.WateringRecordCreate{
		UserPlantID:    plantID,
		Date:           date,
		Time:           clock,
		VolumeWatering: volume,
	}, nil
}

// parseRecordPatchInput builds a partial update; an edit with only a date
// yields a payload with only the date set.
func parseRecordPatchInput(input recordInput) (models.WateringRecordPatch, error) {
	patch := models.WateringRecordPatch{}

	var err error
	if strings.TrimSpace(input.Date) != "" {
		if patch.Date, err = parseDateField(input.Date); err != nil {
			return models.WateringRecordPatch{}, err
		}
	}
	if strings.TrimSpace(input.Time) != "" {
		if patch.Time, err = parseTimeField(input.Time); err != nil {
			return models.WateringRecordPatch{}, err
		}
	}
	if patch.VolumeWatering, err = parseOptionalInt(input.VolumeWatering); err != nil {
		return models.WateringRecordPatch{}, err
	}
	if patch.IsEmpty() {
		return models.WateringRecordPatch{}, errNothingToUpdate
	}
	return patch, nil
}

func parseConditionCreateInput(input conditionInput, userID int64) (models.ConditionCreate, error) {
	if strings.TrimSpace(input.Date) == "" ||
		strings.TrimSpace(input.Temperature) == "" ||
		strings.TrimSpace(input.Watering) == "" {
		return models.ConditionCreate{}, errFillRequiredFields
	}

	date, err := parseDateField(input.Date)
	if err != nil {
		return models.ConditionCreate{}, err
	}
	temperature, err := parseRequiredInt(input.Temperature)
	if err != nil {
		return models.ConditionCreate{}, err
	}
	watering, err := parseRequiredInt(input.Watering)
	if err != nil {
		return models.ConditionCreate{}, err
	}

	return models.ConditionCreate{
		UserID:      userID,
		Date:        date,
		Temperature: temperature,
		Watering:    watering,
	}, nil
}

func parseConditionPatchInput(input conditionInput) (models.ConditionPatch, error) {
	patch := models.ConditionPatch{}

	var err error
	if strings.TrimSpace(input.Date) != "" {
		if patch.Date, err = parseDateField(input.Date); err != nil {
			return models.ConditionPatch{}, err
		}
	}
	if patch.Temperature, err = parseOptionalInt(input.Temperature); err != nil {
		return models.ConditionPatch{}, err
	}
	if patch.Watering, err = parseOptionalInt(input.Watering); err != nil {
		return models.ConditionPatch{}, err
	}
	if patch.IsEmpty() {
		return models.ConditionPatch{}, errNothingToUpdate
	}
	return patch, nil
}

func parseRequiredInt(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errInvalidNumber
	}
	return value, nil
}

func parseOptionalInt(raw string) (*int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := parseRequiredInt(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func parseOptionalID(raw string) (*int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, ok := parsePositiveID(raw)
	if !ok {
		return nil, errInvalidSelection
	}
	return &id, nil
}

func parseDateField(raw string) (string, error) {
	date, ok := services.ParseDate(raw)
	if !ok {
		return "", errInvalidDate
	}
	return date.Format(models.DateLayout), nil
}

// parseTimeField accepts HH:MM and HH:MM:SS and keeps what the user typed.
func parseTimeField(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if _, ok := services.ParseClock(trimmed); !ok {
		return "", errInvalidTime
	}
	return trimmed, nil
}
