package api

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/wateringdiary/webapp/internal/services"
)

func templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t":          templateTranslate,
		"tf":         translateMessagef,
		"longDate":   localizedRawDate,
		"shortClock": services.ShortClock,
		"optInt":     templateOptionalInt,
		"idString":   templateIDString,
		"isActive":   isActiveTemplateRoute,
		"dict":       templateDict,
		"eqID":       templateEqualID,
	}
}

func templateTranslate(messages map[string]string, key string) string {
	return translateMessage(messages, key)
}

// templateOptionalInt prints an optional attribute, or fallback when absent.
func templateOptionalInt(value *int, fallback string) string {
	if value == nil {
		return fallback
	}
	return strconv.Itoa(*value)
}

func templateIDString(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func templateEqualID(left int64, right string) bool {
	id, ok := parsePositiveID(right)
	return ok && id == left
}

func isActiveTemplateRoute(currentPath string, route string) bool {
	path := strings.TrimSpace(currentPath)
	if path == "" {
		return false
	}
	return path == route || strings.HasPrefix(path, route+"?") || strings.HasPrefix(path, route+"/")
}

func templateDict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires key-value pairs")
	}
	result := make(map[string]any, len(values)/2)
	for index := 0; index < len(values); index += 2 {
		key, ok := values[index].(string)
		if !ok {
			return nil, fmt.Errorf("dict key at index %d is not a string", index)
		}
		result[key] = values[index+1]
	}
	return result, nil
}
