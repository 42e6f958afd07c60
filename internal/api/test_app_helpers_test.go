package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/wateringdiary/webapp/internal/apiclient"
	"github.com/wateringdiary/webapp/internal/db"
	"github.com/wateringdiary/webapp/internal/i18n"
)

const (
	testSecretKey = "test-secret-key-0123456789abcdef0123"
	testUserID    = 7
	testLogin     = "alice"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
}

// fakeRESTAPI stands in for the Watering Diary REST API. Routes use
// net/http method patterns, e.g. "GET /api/plant-types".
type fakeRESTAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	server   *httptest.Server
}

func newFakeRESTAPI(t *testing.T, routes map[string]http.HandlerFunc) *fakeRESTAPI {
	t.Helper()

	fake := &fakeRESTAPI{}
	mux := http.NewServeMux()
	for pattern, route := range defaultFakeRoutes() {
		if _, overridden := routes[pattern]; !overridden {
			mux.HandleFunc(pattern, route)
		}
	}
	for pattern, route := range routes {
		mux.HandleFunc(pattern, route)
	}

	fake.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fake.mu.Lock()
		fake.requests = append(fake.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   string(body),
		})
		fake.mu.Unlock()
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(fake.server.Close)
	return fake
}

func defaultFakeRoutes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"POST /api/users/login": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, http.StatusOK, map[string]any{"success": true, "userId": testUserID, "login": testLogin})
		},
		"GET /api/users/{id}": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(w, http.StatusOK, map[string]any{"id": testUserID, "login": testLogin, "name": "Alice"})
		},
	}
}

// userPlantsRoute lists plants owned by the test user, one per id.
func userPlantsRoute(ids ...int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plants := make([]map[string]any, 0, len(ids))
		for _, id := range ids {
			plants = append(plants, map[string]any{
				"id": id, "userId": testUserID, "name": "Plant " + strconv.FormatInt(id, 10), "plantTypeId": 1, "materialId": 1,
			})
		}
		writeTestJSON(w, http.StatusOK, plants)
	}
}

func (fake *fakeRESTAPI) requestsTo(method string, path string) []recordedRequest {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	matched := make([]recordedRequest, 0)
	for _, request := range fake.requests {
		if request.Method == method && request.Path == path {
			matched = append(matched, request)
		}
	}
	return matched
}

func (fake *fakeRESTAPI) requestCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.requests)
}

func writeTestJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type testEnv struct {
	app      *fiber.App
	api      *fakeRESTAPI
	database *gorm.DB
	sessions *db.SessionRepository
}

func newTestEnv(t *testing.T, routes map[string]http.HandlerFunc) *testEnv {
	t.Helper()

	_, testFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve current test file path")
	}
	apiDir := filepath.Dir(testFile)
	internalDir := filepath.Dir(apiDir)
	templatesDir := filepath.Join(internalDir, "templates")
	localesDir := filepath.Join(internalDir, "i18n", "locales")

	logger := zaptest.NewLogger(t)
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "wateringdiary-test.db"), logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	i18nManager, err := i18n.NewManager("en", localesDir)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	fake := newFakeRESTAPI(t, routes)
	client, err := apiclient.New(fake.server.URL+"/api", 2*time.Second, apiclient.WithLogger(logger))
	if err != nil {
		t.Fatalf("init api client: %v", err)
	}

	sessions := db.NewSessionRepository(database)
	handler, err := NewHandler(HandlerConfig{
		API:         client,
		Sessions:    sessions,
		I18n:        i18nManager,
		Logger:      logger,
		SecretKey:   testSecretKey,
		TemplateDir: templatesDir,
		Location:    time.UTC,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Use(RequestLogger(logger))
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	return &testEnv{app: app, api: fake, database: database, sessions: sessions}
}

func (env *testEnv) do(t *testing.T, request *http.Request) *http.Response {
	t.Helper()
	if request.Header.Get("Accept-Language") == "" {
		request.Header.Set("Accept-Language", "en")
	}
	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func (env *testEnv) get(t *testing.T, target string, cookies ...string) *http.Response {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, target, nil)
	if len(cookies) > 0 {
		request.Header.Set("Cookie", strings.Join(cookies, "; "))
	}
	return env.do(t, request)
}

func newFormRequest(method string, target string, form url.Values) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func (env *testEnv) postForm(t *testing.T, target string, form url.Values, cookies ...string) *http.Response {
	t.Helper()
	request := newFormRequest(http.MethodPost, target, form)
	if len(cookies) > 0 {
		request.Header.Set("Cookie", strings.Join(cookies, "; "))
	}
	return env.do(t, request)
}

// login signs the default fake user in and returns the session cookie pair.
func (env *testEnv) login(t *testing.T) string {
	t.Helper()
	response := env.postForm(t, "/login", url.Values{"login": {testLogin}, "password": {"secret"}})
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login status 303, got %d", response.StatusCode)
	}
	value := responseCookieValue(response.Cookies(), sessionCookieName)
	if value == "" {
		t.Fatal("expected session cookie after login")
	}
	return sessionCookieName + "=" + value
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func flashCookiePair(t *testing.T, response *http.Response) string {
	t.Helper()
	value := responseCookieValue(response.Cookies(), flashCookieName)
	if value == "" {
		t.Fatal("expected flash cookie in response")
	}
	return flashCookieName + "=" + value
}

func readBody(t *testing.T, body io.Reader) string {
	t.Helper()
	content, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(content)
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	if err := json.Unmarshal([]byte(readBody(t, body)), &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload["error"]
}
