package services

import (
	"slices"
	"time"

	"github.com/wateringdiary/webapp/internal/models"
)

// RecordTimestamp combines the date and time of a record. Records with an
// unparseable date sort as the zero time; an unparseable time counts as
// midnight.
func RecordTimestamp(record models.WateringRecord) time.Time {
	date, ok := ParseDate(record.Date)
	if !ok {
		return time.Time{}
	}
	clock, _ := ParseClock(record.Time)
	return date.Add(clock)
}

// SortRecordsDesc orders records most recent first, ties by id descending.
// It sorts a copy.
func SortRecordsDesc(records []models.WateringRecord) []models.WateringRecord {
	sorted := slices.Clone(records)
	slices.SortFunc(sorted, func(left, right models.WateringRecord) int {
		if order := RecordTimestamp(right).Compare(RecordTimestamp(left)); order != 0 {
			return order
		}
		return compareIDsDesc(left.ID, right.ID)
	})
	return sorted
}

func SortConditionsDesc(conditions []models.Condition) []models.Condition {
	sorted := slices.Clone(conditions)
	slices.SortFunc(sorted, func(left, right models.Condition) int {
		leftDate, _ := ParseDate(left.Date)
		rightDate, _ := ParseDate(right.Date)
		if order := rightDate.Compare(leftDate); order != 0 {
			return order
		}
		return compareIDsDesc(left.ID, right.ID)
	})
	return sorted
}

func compareIDsDesc(left int64, right int64) int {
	switch {
	case left > right:
		return -1
	case left < right:
		return 1
	default:
		return 0
	}
}
