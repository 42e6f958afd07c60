package api

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diaryRoutes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /api/user-plants/user/{id}": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, http.StatusOK, []map[string]any{
				{"id": 1, "userId": testUserID, "name": "Ficus", "plantTypeId": 1, "materialId": 1},
				{"id": 2, "userId": testUserID, "name": "Cactus", "plantTypeId": 2, "materialId": 1},
				{"id": 3, "userId": testUserID, "name": "Aloe", "plantTypeId": 2, "materialId": 2},
			})
		},
		"GET /api/watering-records/plant/{id}": func(w http.ResponseWriter, r *http.Request) {
			switch r.PathValue("id") {
			case "1":
				writeTestJSON(w, http.StatusOK, []map[string]any{
					{"id": 10, "userPlantId": 1, "date": "2025-01-15", "time": "08:00:00", "volumeWatering": 200, "errorRateK": 30},
				})
			case "2":
				writeTestJSON(w, http.StatusInternalServerError, map[string]any{"message": "boom"})
			default:
				writeTestJSON(w, http.StatusOK, []map[string]any{
					{"id": 11, "userPlantId": 3, "date": "2025-01-16", "time": "09:30", "volumeWatering": 150, "errorRateK": 0},
					{"id": 12, "userPlantId": 3, "date": "2025-01-10", "time": "07:00", "volumeWatering": 300, "errorRateK": -40},
				})
			}
		},
	}
}

func TestDiaryShowsLoadedRecordsAndWarnsAboutSkippedPlants(t *testing.T) {
	env := newTestEnv(t, diaryRoutes())
	sessionCookie := env.login(t)

	response := env.get(t, "/diary", sessionCookie)
	require.Equal(t, http.StatusOK, response.StatusCode)
	body := readBody(t, response.Body)

	assert.Contains(t, body, "Could not load records for 1 plant(s)")
	assert.Contains(t, body, `class="banner banner-warning"`)
	assert.Contains(t, body, "Underwatered by 30 ml")
	assert.Contains(t, body, "Overwatered by 40 ml")
	assert.Contains(t, body, "Perfect")

	newest := strings.Index(body, "January 16, 2025")
	middle := strings.Index(body, "January 15, 2025")
	oldest := strings.Index(body, "January 10, 2025")
	require.True(t, newest >= 0 && middle >= 0 && oldest >= 0, "expected all three record dates in the page")
	assert.True(t, newest < middle && middle < oldest, "records must be listed newest first")

	for _, plantID := range []string{"1", "2", "3"} {
		assert.Len(t, env.api.requestsTo(http.MethodGet, "/api/watering-records/plant/"+plantID), 1)
	}
}

func TestDiaryFilterNarrowsRecordsLocally(t *testing.T) {
	env := newTestEnv(t, diaryRoutes())
	sessionCookie := env.login(t)

	response := env.get(t, "/diary?plant=3&from=2025-01-12", sessionCookie)
	require.Equal(t, http.StatusOK, response.StatusCode)
	body := readBody(t, response.Body)

	assert.Contains(t, body, "January 16, 2025")
	assert.NotContains(t, body, "January 15, 2025")
	assert.NotContains(t, body, "January 10, 2025")
	assert.Contains(t, body, "/diary/export?from=2025-01-12&amp;plant=3")
}

func TestDiaryReversedRangeShowsWarningAndNoRecords(t *testing.T) {
	env := newTestEnv(t, diaryRoutes())
	sessionCookie := env.login(t)

	response := env.get(t, "/diary?from=2025-02-01&to=2025-01-01", sessionCookie)
	require.Equal(t, http.StatusOK, response.StatusCode)
	body := readBody(t, response.Body)

	assert.Contains(t, body, "The start date is after the end date, so no records match")
	assert.NotContains(t, body, "January 16, 2025")
	assert.NotContains(t, body, "January 15, 2025")
	assert.NotContains(t, body, "January 10, 2025")
	assert.Contains(t, body, "/diary/export?from=2025-02-01&amp;to=2025-01-01")
}

func TestDiaryMalformedFilterShowsErrorAndAllRecords(t *testing.T) {
	env := newTestEnv(t, diaryRoutes())
	sessionCookie := env.login(t)

	response := env.get(t, "/diary?plant=abc", sessionCookie)
	require.Equal(t, http.StatusOK, response.StatusCode)
	body := readBody(t, response.Body)

	assert.Contains(t, body, "Invalid plant in the filter")
	assert.Contains(t, body, "January 16, 2025")
	assert.Contains(t, body, "January 10, 2025")

	errorBanner := strings.Index(body, "banner-error")
	warningBanner := strings.Index(body, "banner-warning")
	require.True(t, errorBanner >= 0 && warningBanner >= 0)
	assert.Less(t, errorBanner, warningBanner, "errors render before warnings")
}

func TestDiaryWithoutRecordsShowsEmptyState(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /api/user-plants/user/{id}": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, http.StatusOK, []any{})
		},
	})
	sessionCookie := env.login(t)

	response := env.get(t, "/diary", sessionCookie)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, readBody(t, response.Body), "You have no watering records yet")
}

func TestUpdateRecordSendsOnlyFilledFields(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /api/user-plants/user/{id}": userPlantsRoute(1),
		"GET /api/watering-records/{id}": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, http.StatusOK, map[string]any{"id": 5, "userPlantId": 1, "date": "2025-02-28", "time": "08:00", "volumeWatering": 200})
		},
		"PATCH /api/watering-records/{id}": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, http.StatusOK, map[string]any{"id": 5, "userPlantId": 1, "date": "2025-03-01", "time": "08:00", "volumeWatering": 200})
		},
	})
	sessionCookie := env.login(t)

	response := env.postForm(t, "/diary/5", url.Values{
		"date":            {"2025-03-01"},
		"time":            {""},
		"volume_watering": {""},
	}, sessionCookie)
	require.Equal(t, http.StatusSeeOther, response.StatusCode)
	assert.Equal(t, "/diary", response.Header.Get("Location"))

	calls := env.api.requestsTo(http.MethodPatch, "/api/watering-records/5")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"date":"2025-03-01"}`, calls[0].Body)

	assert.NotEmpty(t, responseCookieValue(response.Cookies(), flashCookieName))
}

func TestUpdateRecordWithNothingFilledIsRejectedLocally(t *testing.T) {
	env := newTestEnv(t, nil)
	sessionCookie := env.login(t)
	before := env.api.requestCount()

	response := env.postForm(t, "/diary/5", url.Values{"date": {""}}, sessionCookie)
	require.Equal(t, http.StatusSeeOther, response.StatusCode)
	assert.Equal(t, "/diary?edit=5", response.Header.Get("Location"))
	assert.Equal(t, before, env.api.requestCount())
}

func TestCreateRecordSendsFullPayload(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /api/user-plants/user/{id}": userPlantsRoute(3),
		"POST /api/watering-records": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, http.StatusCreated, map[string]any{"id": 20})
		},
	})
	sessionCookie := env.login(t)

	response := env.postForm(t, "/diary", url.Values{
		"user_plant_id":   {"3"},
		"date":            {"2025-03-02"},
		"time":            {"18:45"},
		"volume_watering": {"250"},
	}, sessionCookie)
	require.Equal(t, http.StatusSeeOther, response.StatusCode)
	assert.Equal(t, "/diary", response.Header.Get("Location"))

	calls := env.api.requestsTo(http.MethodPost, "/api/watering-records")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"userPlantId":3,"date":"2025-03-02","time":"18:45","volumeWatering":250}`, calls[0].Body)
}

func TestCreateRecordAPIErrorIsShownVerbatimOverHTMX(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /api/user-plants/user/{id}": userPlantsRoute(3),
		"POST /api/watering-records": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, http.StatusBadRequest, map[string]any{"message": "Volume is too large", "status": 400})
		},
	})
	sessionCookie := env.login(t)

	request := newFormRequest(http.MethodPost, "/diary", url.Values{
		"user_plant_id":   {"3"},
		"date":            {"2025-03-02"},
		"time":            {"18:45"},
		"volume_watering": {"99999"},
	})
	request.Header.Set("Cookie", sessionCookie)
	request.Header.Set("HX-Request", "true")
	response := env.do(t, request)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, readBody(t, response.Body), "Volume is too large")
}

func TestDiaryExportStreamsWorkbook(t *testing.T) {
	workbook := strings.Repeat("x", 4096)
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /api/user-plants/user/{id}": userPlantsRoute(3),
		"GET /api/watering-records/export/excel": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", `attachment; filename="watering_records.xlsx"`)
			_, _ = w.Write([]byte(workbook))
		},
	})
	sessionCookie := env.login(t)

	response := env.get(t, "/diary/export?plant=3&from=2025-01-01", sessionCookie)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, response.Header.Get("Content-Disposition"), "watering_records.xlsx")
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", response.Header.Get("Content-Type"))
	assert.Equal(t, workbook, readBody(t, response.Body))

	calls := env.api.requestsTo(http.MethodGet, "/api/watering-records/export/excel")
	require.Len(t, calls, 1)
	assert.Equal(t, "7", calls[0].Query.Get("userId"))
	assert.Equal(t, "3", calls[0].Query.Get("plantId"))
	assert.Equal(t, "2025-01-01", calls[0].Query.Get("dateFrom"))
	assert.Empty(t, calls[0].Query.Get("dateTo"))
}

func TestDiaryRecommendationPartial(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /api/user-plants/user/{id}": userPlantsRoute(3),
		"GET /api/watering-records/calculate": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, http.StatusOK, map[string]any{"userPlantId": 3, "recommendedVolume": 275, "unit": "ml"})
		},
	})
	sessionCookie := env.login(t)

	response := env.get(t, "/diary/recommendation?user_plant_id=3", sessionCookie)
	require.Equal(t, http.StatusOK, response.StatusCode)
	body := readBody(t, response.Body)
	assert.Contains(t, body, "275")
	assert.NotContains(t, body, "<html")

	calls := env.api.requestsTo(http.MethodGet, "/api/watering-records/calculate")
	require.Len(t, calls, 1)
	assert.Equal(t, "3", calls[0].Query.Get("userPlantId"))
}

func TestDiaryExportPassesReversedRangeThrough(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"GET /api/watering-records/export/excel": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			_, _ = w.Write([]byte("empty"))
		},
	})
	sessionCookie := env.login(t)

	response := env.get(t, "/diary/export?from=2025-02-01&to=2025-01-01", sessionCookie)
	require.Equal(t, http.StatusOK, response.StatusCode)

	calls := env.api.requestsTo(http.MethodGet, "/api/watering-records/export/excel")
	require.Len(t, calls, 1)
	assert.Equal(t, "2025-02-01", calls[0].Query.Get("dateFrom"))
	assert.Equal(t, "2025-01-01", calls[0].Query.Get("dateTo"))
}
