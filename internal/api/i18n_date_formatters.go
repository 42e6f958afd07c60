package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/wateringdiary/webapp/internal/services"
)

var monthLongNames = map[string][]string{
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	"ru": {"января", "февраля", "марта", "апреля", "мая", "июня", "июля", "августа", "сентября", "октября", "ноября", "декабря"},
}

// localizedLongDate renders "15 января 2025 г." or "January 15, 2025".
func localizedLongDate(language string, value time.Time) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	months, ok := monthLongNames[lang]
	if !ok {
		return value.Format("January 2, 2006")
	}

	month := months[int(value.Month())-1]
	if lang == "ru" {
		return fmt.Sprintf("%d %s %d г.", value.Day(), month, value.Year())
	}
	return fmt.Sprintf("%s %d, %d", month, value.Day(), value.Year())
}

// localizedRawDate formats a YYYY-MM-DD value from the API. Anything that
// does not parse is shown as received.
func localizedRawDate(language string, raw string) string {
	date, ok := services.ParseDate(raw)
	if !ok {
		return raw
	}
	return localizedLongDate(language, date)
}
