package services

import (
	"strings"
	"time"

	"github.com/wateringdiary/webapp/internal/models"
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// ParseDate parses an API date (YYYY-MM-DD) as a UTC calendar day.
func ParseDate(raw string) (time.Time, bool) {
	parsed, err := time.Parse(models.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// ParseClock accepts both HH:MM and HH:MM:SS and returns the offset from
// midnight.
func ParseClock(raw string) (time.Duration, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range []string{models.TimeLayout, models.TimeSecondsLayout} {
		parsed, err := time.Parse(layout, trimmed)
		if err == nil {
			return time.Duration(parsed.Hour())*time.Hour +
				time.Duration(parsed.Minute())*time.Minute +
				time.Duration(parsed.Second())*time.Second, true
		}
	}
	return 0, false
}

// ShortClock trims seconds off an API time ("08:30:00" -> "08:30").
func ShortClock(raw string) string {
	offset, ok := ParseClock(raw)
	if !ok {
		return strings.TrimSpace(raw)
	}
	return time.Time{}.Add(offset).Format(models.TimeLayout)
}

func TodayString(now time.Time, location *time.Location) string {
	return DateAtLocation(now, location).Format(models.DateLayout)
}

func ClockString(now time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return now.In(location).Format(models.TimeLayout)
}
