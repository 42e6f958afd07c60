package api

import (
	"errors"
	"net/url"

	"github.com/wateringdiary/webapp/internal/models"
	"github.com/wateringdiary/webapp/internal/services"
)

type recordRow struct {
	Record      models.WateringRecord
	PlantName   string
	Discrepancy services.Discrepancy
	StatusText  string
}

type diaryFilterView struct {
	Plant  string
	From   string
	To     string
	Active bool
}

type recordFormView struct {
	Editing        bool
	Action         string
	Record         models.WateringRecord
	Recommendation *models.Recommendation
}

func buildRecordRows(messages map[string]string, records []models.WateringRecord, plants []models.UserPlant, unknown string) []recordRow {
	rows := make([]recordRow, 0, len(records))
	for _, record := range records {
		discrepancy := services.ClassifyDiscrepancy(record.ErrorRateK)
		rows = append(rows, recordRow{
			Record:      record,
			PlantName:   services.PlantName(plants, record.UserPlantID, unknown),
			Discrepancy: discrepancy,
			StatusText:  discrepancyText(messages, discrepancy),
		})
	}
	return rows
}

// discrepancyText renders "Недолито 30 мл" style labels. The exact label
// has no amount.
func discrepancyText(messages map[string]string, discrepancy services.Discrepancy) string {
	if !discrepancy.Highlighted() {
		return translateMessage(messages, discrepancy.LabelKey)
	}
	return translateMessagef(messages, discrepancy.LabelKey, discrepancy.Amount)
}

func recordFilterErrorKey(err error) string {
	switch {
	case errors.Is(err, services.ErrRecordFilterPlantInvalid):
		return "diary.filter.error.plant"
	case errors.Is(err, services.ErrRecordFilterFromInvalid):
		return "diary.filter.error.from"
	case errors.Is(err, services.ErrRecordFilterToInvalid):
		return "diary.filter.error.to"
	default:
		return "validation.invalid_input"
	}
}

func (filter diaryFilterView) exportURL() string {
	values := url.Values{}
	if filter.Plant != "" {
		values.Set("plant", filter.Plant)
	}
	if filter.From != "" {
		values.Set("from", filter.From)
	}
	if filter.To != "" {
		values.Set("to", filter.To)
	}
	return withQuery(diaryPath+"/export", values)
}
