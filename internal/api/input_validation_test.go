package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wateringdiary/webapp/internal/models"
)

func TestParseRecordPatchInputKeepsOnlyFilledFields(t *testing.T) {
	t.Parallel()

	patch, err := parseRecordPatchInput(recordInput{Date: " 2025-03-01 "})
	require.NoError(t, err)
	assert.Equal(t, models.WateringRecordPatch{Date: "2025-03-01"}, patch)

	volume := 0
	patch, err = parseRecordPatchInput(recordInput{VolumeWatering: "0"})
	require.NoError(t, err)
	assert.Equal(t, models.WateringRecordPatch{VolumeWatering: &volume}, patch)

	_, err = parseRecordPatchInput(recordInput{})
	assert.True(t, errors.Is(err, errNothingToUpdate))
}

func TestParseRecordCreateInputValidation(t *testing.T) {
	t.Parallel()

	valid := recordInput{UserPlantID: "3", Date: "2025-03-02", Time: "18:45", VolumeWatering: "250"}

	tests := []struct {
		name    string
		mutate  func(input *recordInput)
		wantErr error
	}{
		{name: "valid", mutate: func(*recordInput) {}},
		{name: "seconds accepted", mutate: func(input *recordInput) { input.Time = "18:45:30" }},
		{name: "missing plant", mutate: func(input *recordInput) { input.UserPlantID = "" }, wantErr: errFillRequiredFields},
		{name: "missing volume", mutate: func(input *recordInput) { input.VolumeWatering = " " }, wantErr: errFillRequiredFields},
		{name: "bad plant", mutate: func(input *recordInput) { input.UserPlantID = "abc" }, wantErr: errInvalidSelection},
		{name: "bad date", mutate: func(input *recordInput) { input.Date = "2025-02-30" }, wantErr: errInvalidDate},
		{name: "bad time", mutate: func(input *recordInput) { input.Time = "25:00" }, wantErr: errInvalidTime},
		{name: "bad volume", mutate: func(input *recordInput) { input.VolumeWatering = "1.5" }, wantErr: errInvalidNumber},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			input := valid
			testCase.mutate(&input)
			_, err := parseRecordCreateInput(input)
			if testCase.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestParsePlantInputs(t *testing.T) {
	t.Parallel()

	created, err := parsePlantCreateInput(plantInput{Name: " Ficus ", PlantTypeID: "2", MaterialID: "1", PotSize: "15"}, 7)
	require.NoError(t, err)
	potSize := 15
	assert.Equal(t, models.UserPlantCreate{UserID: 7, Name: "Ficus", PlantTypeID: 2, MaterialID: 1, PotSize: &potSize}, created)

	_, err = parsePlantCreateInput(plantInput{Name: "Ficus", PlantTypeID: "2"}, 7)
	assert.ErrorIs(t, err, errFillRequiredFields)

	_, err = parsePlantCreateInput(plantInput{Name: "Ficus", PlantTypeID: "2", MaterialID: "1", High: "tall"}, 7)
	assert.ErrorIs(t, err, errInvalidNumber)

	patch, err := parsePlantPatchInput(plantInput{MaterialID: "4"})
	require.NoError(t, err)
	require.NotNil(t, patch.MaterialID)
	assert.Equal(t, int64(4), *patch.MaterialID)
	assert.Nil(t, patch.PlantTypeID)
	assert.Empty(t, patch.Name)

	_, err = parsePlantPatchInput(plantInput{})
	assert.ErrorIs(t, err, errNothingToUpdate)
}

func TestParseAuthAndProfileInputs(t *testing.T) {
	t.Parallel()

	_, err := parseLoginInput(loginInput{Login: "alice"})
	assert.ErrorIs(t, err, errFillAllFields)

	_, err = parseRegisterInput(registerInput{Login: "bob", Name: "Bob"})
	assert.ErrorIs(t, err, errFillRequiredFields)

	patch, err := parseProfileInput(profileInput{Name: " Alice "})
	require.NoError(t, err)
	assert.Equal(t, models.UserPatch{Name: "Alice"}, patch)

	_, err = parseProfileInput(profileInput{})
	assert.ErrorIs(t, err, errNothingToUpdate)
}

func TestParseConditionInputs(t *testing.T) {
	t.Parallel()

	created, err := parseConditionCreateInput(conditionInput{Date: "2025-01-05", Temperature: "-3", Watering: "2"}, 7)
	require.NoError(t, err)
	assert.Equal(t, models.ConditionCreate{UserID: 7, Date: "2025-01-05", Temperature: -3, Watering: 2}, created)

	_, err = parseConditionCreateInput(conditionInput{Date: "2025-01-05", Temperature: "", Watering: "2"}, 7)
	assert.ErrorIs(t, err, errFillRequiredFields)

	patch, err := parseConditionPatchInput(conditionInput{Temperature: "21"})
	require.NoError(t, err)
	require.NotNil(t, patch.Temperature)
	assert.Equal(t, 21, *patch.Temperature)
	assert.Nil(t, patch.Watering)
}

func TestValidationMessageKey(t *testing.T) {
	t.Parallel()

	key, ok := validationMessageKey(errInvalidDate)
	require.True(t, ok)
	assert.Equal(t, "validation.invalid_date", key)

	_, ok = validationMessageKey(errors.New("other"))
	assert.False(t, ok)
	assert.Equal(t, "validation.invalid_input", validationKeyOrDefault(errors.New("other")))
}
