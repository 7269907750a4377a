package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"cardswap/internal/config"
	"cardswap/internal/email"
	"cardswap/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// TestServer - приложение целиком поверх временных директорий
type TestServer struct {
	Server   *httptest.Server
	Router   *gin.Engine
	Config   *config.Config
	Provider *email.MockProvider
	Deps     *Dependencies
}

// NewTestServer создает сервер; configure может поменять конфигурацию до запуска
func NewTestServer(t *testing.T, configure ...func(cfg *config.Config)) *TestServer {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(dir, "data", "submissions.json")
	cfg.Storage.BasePath = filepath.Join(dir, "uploads")
	cfg.Web.PublicDir = filepath.Join(dir, "public")
	cfg.Web.IndexFile = filepath.Join(dir, "public", "index.html")
	cfg.RateLimit.RPS = 0

	cfg.Notify.Email = "ops@example.com"
	cfg.Email.Username = "mailer@example.com"
	cfg.Email.Password = "app-password"

	for _, fn := range configure {
		fn(cfg)
	}

	require.NoError(t, os.MkdirAll(cfg.Web.PublicDir, 0o755))
	require.NoError(t, os.WriteFile(cfg.Web.IndexFile, []byte("<h1>Cardswap</h1>"), 0o644))

	provider := email.NewMockProvider()
	deps, err := NewDependencies(cfg, provider)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	deps.Worker.Start(ctx)
	deps.Worker.LogErrors(ctx)

	router, err := SetupRouter(cfg, deps)
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		cancel()
		deps.Close()
	})

	return &TestServer{
		Server:   server,
		Router:   router,
		Config:   cfg,
		Provider: provider,
		Deps:     deps,
	}
}

// Do отправляет запрос и возвращает ответ с телом
func (ts *TestServer) Do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

// Get - GET с необязательной Basic-авторизацией (user == "" - без неё)
func (ts *TestServer) Get(t *testing.T, path, user, pass string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+path, nil)
	require.NoError(t, err)
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	return ts.Do(t, req)
}

// PostForm отправляет urlencoded форму
func (ts *TestServer) PostForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.Do(t, req)
}

// PostJSON отправляет JSON
func (ts *TestServer) PostJSON(t *testing.T, path string, body interface{}) (*http.Response, string) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return ts.Do(t, req)
}

// StoredSubmissions читает файл хранилища напрямую
func (ts *TestServer) StoredSubmissions(t *testing.T) []models.Submission {
	t.Helper()

	raw, err := os.ReadFile(ts.Config.Store.Path)
	require.NoError(t, err)

	var list []models.Submission
	require.NoError(t, json.Unmarshal(raw, &list))
	return list
}

// multipartSubmission собирает тело формы с файлом cardImage
func multipartSubmission(t *testing.T, fields url.Values, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	if filename != "" {
		part, err := mw.CreateFormFile("cardImage", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return &body, mw.FormDataContentType()
}

func validForm() url.Values {
	return url.Values{
		"name":    {"Ann"},
		"contact": {"ann@example.com"},
		"brand":   {"Amazon"},
		"value":   {"50"},
		"consent": {"yes"},
	}
}

func strconvBase36(ms int64) string {
	return strconv.FormatInt(ms, 36)
}
