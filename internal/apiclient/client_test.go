package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wateringdiary/webapp/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL+"/api", time.Second)
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "localhost:8080", "ftp://example.com/api", "http:///api"} {
		_, err := New(raw, time.Second)
		assert.Errorf(t, err, "expected error for %q", raw)
	}
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/login", r.URL.Path)

		var credentials models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&credentials))
		assert.Equal(t, models.Credentials{Login: "anna", Password: "secret"}, credentials)

		writeJSON(w, http.StatusOK, map[string]any{"success": true, "userId": 7, "login": "anna"})
	})

	result, err := client.Login(context.Background(), "anna", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.UserID)
	assert.Equal(t, "anna", result.Login)
}

func TestLoginRejected(t *testing.T) {
	t.Parallel()

	t.Run("401 with error body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Неверный логин/пароль"})
		})

		_, err := client.Login(context.Background(), "anna", "wrong")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnauthorized))
		message, ok := ServerMessage(err)
		assert.True(t, ok)
		assert.Equal(t, "Неверный логин/пароль", message)
	})

	t.Run("200 with success false", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "blocked"})
		})

		_, err := client.Login(context.Background(), "anna", "secret")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnauthorized))
		message, _ := ServerMessage(err)
		assert.Equal(t, "blocked", message)
	})
}

func TestStatusErrorWithoutMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListPlantTypes(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindStatus, apiErr.Kind())
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Empty(t, apiErr.Message)

	resource, ok := ResourceOf(err)
	assert.True(t, ok)
	assert.Equal(t, ResourcePlantTypes, resource)
}

func TestStatusErrorWithMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Растение не найдено", "status": 404})
	})

	_, err := client.GetUserPlant(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))

	message, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Растение не найдено", message)
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := New(baseURL, time.Second)
	require.NoError(t, err)

	_, err = client.ListMaterials(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindTransport, apiErr.Kind())
	assert.Zero(t, apiErr.Status)
	assert.Equal(t, ResourceMaterials, apiErr.Resource)
	assert.NotNil(t, errors.Unwrap(apiErr))
}

func TestDecodeFailureIsTransportKind(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("<html>"))
	})

	_, err := client.ListUserPlants(context.Background(), 1)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindTransport, apiErr.Kind())
}

func TestPartialUpdateSendsOnlyFilledFields(t *testing.T) {
	t.Parallel()

	var body []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/watering-records/5", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ = io.ReadAll(r.Body)
		writeJSON(w, http.StatusOK, map[string]any{"id": 5, "userPlantId": 1, "date": "2025-03-01", "time": "08:00", "volumeWatering": 200})
	})

	record, err := client.UpdateRecord(context.Background(), 5, models.WateringRecordPatch{Date: "2025-03-01"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-03-01"}`, string(body))
	assert.Equal(t, "2025-03-01", record.Date)
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/conditions/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteCondition(context.Background(), 9))
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/watering-records/calculate", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("userPlantId"))
		writeJSON(w, http.StatusOK, map[string]any{"userPlantId": 3, "recommendedVolume": 250, "unit": "мл"})
	})

	recommendation, err := client.Recommend(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, models.Recommendation{UserPlantID: 3, RecommendedVolume: 250, Unit: "мл"}, recommendation)
}

func TestExportRecordsStreamsBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/watering-records/export/excel", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "7", query.Get("userId"))
		assert.Equal(t, "2", query.Get("plantId"))
		assert.Equal(t, "2025-01-01", query.Get("dateFrom"))
		assert.False(t, query.Has("dateTo"))

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", `attachment; filename="watering_records_2025.xlsx"`)
		_, _ = w.Write([]byte("xlsx-bytes"))
	})

	download, err := client.ExportRecords(context.Background(), ExportQuery{UserID: 7, PlantID: 2, DateFrom: "2025-01-01"})
	require.NoError(t, err)
	defer download.Body.Close()

	assert.Equal(t, "watering_records_2025.xlsx", download.Filename)
	assert.Equal(t, "application/octet-stream", download.ContentType)
	content, err := io.ReadAll(download.Body)
	require.NoError(t, err)
	assert.Equal(t, "xlsx-bytes", string(content))
}

func TestExportFilenameFallback(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 2, 10, 4, 5, 0, time.UTC)
	assert.Equal(t, "watering_records_2025-03-02_10-04-05.xlsx", exportFilename("", now))
	assert.Equal(t, "report.xlsx", exportFilename(`attachment; filename=report.xlsx`, now))
}

func TestErrorBodyMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "message field", raw: `{"message":"Логин занят","status":409}`, want: "Логин занят"},
		{name: "error field", raw: `{"error":"Неверный логин/пароль"}`, want: "Неверный логин/пароль"},
		{name: "message wins", raw: `{"message":"a","error":"b"}`, want: "a"},
		{name: "empty body", raw: ``, want: ""},
		{name: "not json", raw: `Internal Server Error`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorBodyMessage([]byte(tt.raw)))
		})
	}
}
