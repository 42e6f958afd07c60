package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/wateringdiary/webapp/internal/models"
)

var (
	ErrRecordFilterPlantInvalid = errors.New("record filter invalid plant")
	ErrRecordFilterFromInvalid  = errors.New("record filter invalid from date")
	ErrRecordFilterToInvalid    = errors.New("record filter invalid to date")
)

// RecordFilter narrows the diary. Nil fields put no constraint on records;
// both date bounds are inclusive.
type RecordFilter struct {
	PlantID *int64
	From    *time.Time
	To      *time.Time
}

func (filter RecordFilter) IsEmpty() bool {
	return filter.PlantID == nil && filter.From == nil && filter.To == nil
}

// IsReversed reports a range whose start is after its end. Such a filter is
// still applied and matches nothing.
func (filter RecordFilter) IsReversed() bool {
	return filter.From != nil && filter.To != nil && filter.To.Before(*filter.From)
}

func (filter RecordFilter) Matches(record models.WateringRecord) bool {
	if filter.PlantID != nil && record.UserPlantID != *filter.PlantID {
		return false
	}
	if filter.From == nil && filter.To == nil {
		return true
	}

	date, ok := ParseDate(record.Date)
	if !ok {
		return false
	}
	if filter.From != nil && date.Before(*filter.From) {
		return false
	}
	if filter.To != nil && date.After(*filter.To) {
		return false
	}
	return true
}

// ParseRecordFilter validates raw query values. Blank values mean "no
// constraint".
func ParseRecordFilter(rawPlant string, rawFrom string, rawTo string) (RecordFilter, error) {
	filter := RecordFilter{}

	if plantRaw := strings.TrimSpace(rawPlant); plantRaw != "" {
		plantID, err := strconv.ParseInt(plantRaw, 10, 64)
		if err != nil || plantID <= 0 {
			return RecordFilter{}, ErrRecordFilterPlantInvalid
		}
		filter.PlantID = &plantID
	}

	if fromRaw := strings.TrimSpace(rawFrom); fromRaw != "" {
		from, ok := ParseDate(fromRaw)
		if !ok {
			return RecordFilter{}, ErrRecordFilterFromInvalid
		}
		filter.From = &from
	}

	if toRaw := strings.TrimSpace(rawTo); toRaw != "" {
		to, ok := ParseDate(toRaw)
		if !ok {
			return RecordFilter{}, ErrRecordFilterToInvalid
		}
		filter.To = &to
	}

	return filter, nil
}

// FilterRecords returns the records matching filter in their original order.
// The input slice is never modified.
func FilterRecords(records []models.WateringRecord, filter RecordFilter) []models.WateringRecord {
	filtered := make([]models.WateringRecord, 0, len(records))
	for _, record := range records {
		if filter.Matches(record) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
