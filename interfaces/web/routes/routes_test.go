package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"tps-admin/application/serviceimpl"
	"tps-admin/infrastructure/tpsapi"
	"tps-admin/infrastructure/viewstate"
	"tps-admin/interfaces/web/handlers"
	"tps-admin/interfaces/web/views"
	"tps-admin/pkg/config"
	"tps-admin/pkg/i18n"
	"tps-admin/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init("", false)
	os.Exit(m.Run())
}

const (
	citiesJSON = `[{"id":1,"name":"Beograd","ptt":11000},{"id":2,"name":"Kragujevac","ptt":34000}]`

	markoJSON = `{"id":1,"jmbg":"1906977714551","name":"Marko","surname":"Markovic","birthdate":"1977-06-19",
		"ageInMonths":569,"heightInCm":187,"cityOfBirth":{"id":1,"name":"Beograd"},"residence":{"id":2,"name":"Kragujevac"}}`

	personsJSON = `[` + markoJSON + `,
		{"id":2,"jmbg":"0101990710006","name":"Ana","surname":"Jovanovic","birthdate":"1990-01-01",
		"ageInMonths":418,"heightInCm":165,"cityOfBirth":{"id":2,"name":"Kragujevac"},"residence":{"id":2,"name":"Kragujevac"}}]`
)

type remoteCall struct {
	Method string
	Path   string
	Body   string
}

type WebSuite struct {
	suite.Suite
	remote  *httptest.Server
	mu      sync.Mutex
	calls   []remoteCall
	replies map[string]string
	status  map[string]int
	cfg     *config.Config
	app     *fiber.App
	cookie  *http.Cookie
}

func TestWebSuite(t *testing.T) {
	suite.Run(t, new(WebSuite))
}

func (s *WebSuite) SetupTest() {
	s.calls = nil
	s.cookie = nil
	s.replies = map[string]string{
		"GET /api/v1/tps/city":                      citiesJSON,
		"GET /api/v1/tps/person":                    personsJSON,
		"GET /api/v2/tps/person/jmbg/1906977714551": markoJSON,
	}
	s.status = map[string]int{}

	s.remote = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		defer s.mu.Unlock()
		key := r.Method + " " + r.URL.EscapedPath()
		s.calls = append(s.calls, remoteCall{Method: r.Method, Path: r.URL.EscapedPath(), Body: string(body)})
		status := http.StatusOK
		if code, ok := s.status[key]; ok {
			status = code
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(s.replies[key]))
	}))

	s.cfg = &config.Config{
		App:       config.AppConfig{Name: "TPS Admin", Lang: "sr"},
		Session:   config.SessionConfig{TTL: time.Hour, CookieName: "tps_session"},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}
	s.app = s.buildApp()
}

func (s *WebSuite) TearDownTest() {
	s.remote.Close()
}

func (s *WebSuite) buildApp() *fiber.App {
	translator := i18n.New(s.cfg.App.Lang)
	renderer, err := views.NewRenderer(translator)
	s.Require().NoError(err)

	client := tpsapi.NewClient(s.remote.URL, 5*time.Second, nil)
	store := viewstate.NewStore(time.Hour)

	h := handlers.NewHandlers(&handlers.Services{
		Persons:    client,
		Cities:     serviceimpl.NewCityLoader(client, nil, 0),
		Translator: translator,
		Renderer:   renderer,
		ViewState:  store,
	}, handlers.NewHealthHandler(s.cfg.App.Name, client, nil, store, nil))

	app := NewApp(s.cfg.App.Name)
	SetupMiddleware(app, s.cfg)
	SetupRoutes(app, h, s.cfg)
	return app
}

func (s *WebSuite) reply(key string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[key] = status
	if body != "" {
		s.replies[key] = body
	}
}

func (s *WebSuite) callsTo(method, path string) []remoteCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []remoteCall
	for _, c := range s.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (s *WebSuite) do(method, path string, form url.Values) (*http.Response, string) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	for _, c := range resp.Cookies() {
		if c.Name == s.cfg.Session.CookieName {
			s.cookie = &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, string(raw)
}

func (s *WebSuite) TestListPage() {
	resp, body := s.do(http.MethodGet, "/", nil)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Type"), "text/html")
	s.NotEmpty(resp.Header.Get("X-Request-ID"))
	s.Contains(body, "Podaci o poznanicima")
	s.Contains(body, "Marko Markovic")
	s.Contains(body, "Ana Jovanovic")
	s.Contains(body, "Beograd")
	s.Len(s.callsTo(http.MethodGet, "/api/v1/tps/person"), 1)
	s.NotNil(s.cookie)
}

func (s *WebSuite) TestListNavigation() {
	s.do(http.MethodGet, "/", nil)

	resp, _ := s.do(http.MethodPost, "/", url.Values{"action": {"add"}})
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/add", resp.Header.Get("Location"))

	resp, _ = s.do(http.MethodPost, "/", url.Values{"action": {"update"}, "jmbg": {"1906977714551"}})
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/edit/1906977714551", resp.Header.Get("Location"))

	resp, _ = s.do(http.MethodPost, "/", url.Values{"action": {"explode"}})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *WebSuite) TestConfirmedDelete() {
	s.do(http.MethodGet, "/", nil)

	resp, body := s.do(http.MethodGet, "/delete/1", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Da li ste sigurni?")
	s.Contains(body, "Marko Markovic")

	resp, body = s.do(http.MethodPost, "/", url.Values{"action": {"delete"}, "id": {"1"}, "confirmed": {"true"}})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Len(s.callsTo(http.MethodDelete, "/api/v2/tps/person/id/1"), 1)
	s.NotContains(body, "Marko Markovic")
	s.Contains(body, "Ana Jovanovic")
	// rendered from local state, not refetched
	s.Len(s.callsTo(http.MethodGet, "/api/v1/tps/person"), 1)
}

func (s *WebSuite) TestDeclinedDelete() {
	s.do(http.MethodGet, "/", nil)

	resp, body := s.do(http.MethodPost, "/", url.Values{"action": {"delete"}, "id": {"1"}, "confirmed": {"false"}})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Empty(s.callsTo(http.MethodDelete, "/api/v2/tps/person/id/1"))
	s.Contains(body, "Marko Markovic")
}

func (s *WebSuite) TestFailedDeleteKeepsRow() {
	s.reply("DELETE /api/v2/tps/person/id/1", http.StatusInternalServerError, "")
	s.do(http.MethodGet, "/", nil)

	_, body := s.do(http.MethodPost, "/", url.Values{"action": {"delete"}, "id": {"1"}, "confirmed": {"true"}})
	s.Contains(body, "Marko Markovic")
}

func (s *WebSuite) TestAddPage() {
	resp, body := s.do(http.MethodGet, "/add", nil)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Add Person")
	s.Contains(body, "Odaberi grad")
	s.Contains(body, "Kragujevac")
	s.Len(s.callsTo(http.MethodGet, "/api/v1/tps/city"), 1)
	s.Empty(s.callsTo(http.MethodGet, "/api/v2/tps/person/jmbg/1906977714551"))
}

func (s *WebSuite) TestEditPage() {
	resp, body := s.do(http.MethodGet, "/edit/1906977714551", nil)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Edit Person")
	s.Contains(body, "Update Person")
	s.Contains(body, `value="Marko"`)
	s.Contains(body, `value="187"`)
	s.Contains(body, `<option value="2" selected>Kragujevac</option>`)
	s.Len(s.callsTo(http.MethodGet, "/api/v2/tps/person/jmbg/1906977714551"), 1)
}

func validForm() url.Values {
	return url.Values{
		"jmbg":        {"1906977714551"},
		"name":        {"Marko"},
		"surname":     {"Markovic"},
		"birthdate":   {"1977-06-19"},
		"ageInMonths": {"569"},
		"heightInCm":  {"180"},
		"cityOfBirth": {"1"},
		"residence":   {"2"},
	}
}

func (s *WebSuite) TestAddSubmit() {
	s.do(http.MethodGet, "/add", nil)

	resp, _ := s.do(http.MethodPost, "/add", validForm())
	s.Equal(http.StatusSeeOther, resp.StatusCode)
	s.Equal("/", resp.Header.Get("Location"))

	posts := s.callsTo(http.MethodPost, "/api/v2/tps/person")
	s.Require().Len(posts, 1)
	s.JSONEq(`{"jmbg":"1906977714551","name":"Marko","surname":"Markovic","birthdate":"1977-06-19",
		"ageInMonths":569,"heightInCm":180,"cityOfBirth":1,"residence":2}`, posts[0].Body)
}

func (s *WebSuite) TestInvalidSubmit() {
	form := validForm()
	form.Set("heightInCm", "300")

	resp, body := s.do(http.MethodPost, "/add", form)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Nevalidan unos: Minimalna visina je 70cm, a maksimalna 230cm.")
	s.Contains(body, `value="300"`)
	s.Empty(s.callsTo(http.MethodPost, "/api/v2/tps/person"))
}

func (s *WebSuite) TestServerErrorSubmit() {
	s.reply("POST /api/v2/tps/person", http.StatusConflict, `{"code":"TPS-409","message":"JMBG vec postoji"}`)

	_, body := s.do(http.MethodPost, "/add", validForm())
	s.Contains(body, "Doslo je do greske: TPS-409, JMBG vec postoji")
}

func (s *WebSuite) TestEditSubmit() {
	s.do(http.MethodGet, "/edit/1906977714551", nil)

	resp, _ := s.do(http.MethodPost, "/edit/1906977714551", url.Values{"heightInCm": {"190"}})
	s.Equal(http.StatusSeeOther, resp.StatusCode)

	puts := s.callsTo(http.MethodPut, "/api/v2/tps/person/id/1")
	s.Require().Len(puts, 1)
	s.Contains(puts[0].Body, `"heightInCm":190`)
	s.Contains(puts[0].Body, `"id":1`)
}

func (s *WebSuite) TestExactRouting() {
	for _, path := range []string{"/Add", "/add/", "/edit", "/edit/1/2", "/persons"} {
		resp, _ := s.do(http.MethodGet, path, nil)
		s.Equal(http.StatusNotFound, resp.StatusCode, path)
	}
}

func (s *WebSuite) TestHealth() {
	resp, body := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, `"status":"ok"`)

	resp, body = s.do(http.MethodGet, "/health/detailed", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, `"status":"healthy"`)
	s.Contains(body, `"tps_api"`)
}

func (s *WebSuite) TestHealthUnhealthy() {
	s.reply("GET /api/v1/tps/city", http.StatusBadGateway, "")

	resp, body := s.do(http.MethodGet, "/health/detailed", nil)
	s.Equal(http.StatusServiceUnavailable, resp.StatusCode)
	s.Contains(body, `"status":"unhealthy"`)
}

func TestRateLimit(t *testing.T) {
	_ = logger.Init("", false)

	cfg := &config.Config{
		Session:   config.SessionConfig{TTL: time.Hour, CookieName: "tps_session"},
		RateLimit: config.RateLimitConfig{Enabled: true, MaxRequests: 1, WindowSeconds: 60},
	}
	renderer, err := views.NewRenderer(nil)
	require.NoError(t, err)

	client := tpsapi.NewClient("http://127.0.0.1:1", time.Second, nil)
	h := handlers.NewHandlers(&handlers.Services{
		Persons:   client,
		Cities:    serviceimpl.NewCityLoader(client, nil, 0),
		Renderer:  renderer,
		ViewState: viewstate.NewStore(time.Hour),
	}, nil)

	app := NewApp("test")
	SetupMiddleware(app, cfg)
	SetupRoutes(app, h, cfg)

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("action=add"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusSeeOther, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
}
