package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saynope/internal/catalog"
	"saynope/internal/metrics"
	"saynope/internal/models"
	"saynope/internal/testutil"
)

type lastRand struct{}

func (lastRand) IntN(n int) int { return n - 1 }

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

type fakePopular struct {
	counts []models.CopyCount
	err    error
	limit  int
}

func (f *fakePopular) GetTopCopied(_ context.Context, limit int) ([]models.CopyCount, error) {
	f.limit = limit
	return f.counts, f.err
}

func newApp(c *catalog.Catalog, m *metrics.Metrics, store PopularStore) *fiber.App {
	app := fiber.New()
	reasons := NewReasonHandler(c, m, lastRand{})
	copies := NewCopyHandler(c, m, store)
	app.Get("/api/reasons", reasons.List)
	app.Get("/api/random", reasons.Random)
	app.Get("/api/counts", reasons.Counts)
	app.Get("/api/categories", reasons.Categories)
	app.Post("/api/copies", copies.Create)
	app.Get("/api/popular", copies.Popular)
	return app
}

func call(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req, fiber.TestConfig{})
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return resp.StatusCode, env
}

func TestList(t *testing.T) {
	app := newApp(testutil.SampleCatalog(t), nil, nil)

	tests := []struct {
		name     string
		url      string
		category string
		expected []string
	}{
		{"everything", "/api/reasons", catalog.All, []string{"Too busy", "Not my job", "I'm tired"}},
		{"query", "/api/reasons?q=too", catalog.All, []string{"Too busy"}},
		{"category", "/api/reasons?category=Work", "Work", []string{"Too busy", "Not my job"}},
		{"unknown category is all", "/api/reasons?category=Nope&q=tired", catalog.All, []string{"I'm tired"}},
		{"no match", "/api/reasons?q=vacation", catalog.All, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := call(t, app, httptest.NewRequest(http.MethodGet, tt.url, nil))
			require.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, "ok", env.Status)

			var got models.ReasonsResponse
			require.NoError(t, json.Unmarshal(env.Data, &got))
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.expected, got.Reasons)
			assert.Equal(t, len(tt.expected), got.Count)
		})
	}
}

func TestList_LongQueryRejected(t *testing.T) {
	long := strings.Repeat("a", 250)
	c := catalog.New([]catalog.Category{{Name: "Long", Reasons: []string{long}}})
	app := newApp(c, nil, nil)

	// A shortened query would match the reason; the full one does not.
	query := long + "zzz"
	require.Empty(t, c.Filter(query, catalog.All))

	status, env := call(t, app, httptest.NewRequest(http.MethodGet, "/api/reasons?q="+query, nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "query is too long", env.Error)
}

func TestRandom(t *testing.T) {
	app := newApp(testutil.SampleCatalog(t), nil, nil)

	status, env := call(t, app, httptest.NewRequest(http.MethodGet, "/api/random?category=Work", nil))
	require.Equal(t, fiber.StatusOK, status)
	var got models.RandomResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, models.RandomResponse{Category: "Work", Reason: "Not my job"}, got)

	// All reports the owning category of the pick.
	status, env = call(t, app, httptest.NewRequest(http.MethodGet, "/api/random", nil))
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, models.RandomResponse{Category: "Life", Reason: "I'm tired"}, got)
}

func TestRandom_Empty(t *testing.T) {
	c := catalog.New([]catalog.Category{{Name: "Empty"}})
	m := metrics.New(c, nil)
	app := newApp(c, m, nil)

	status, env := call(t, app, httptest.NewRequest(http.MethodGet, "/api/random?category=Empty", nil))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "no reasons available", env.Error)
}

func TestCountsAndCategories(t *testing.T) {
	app := newApp(testutil.SampleCatalog(t), nil, nil)

	_, env := call(t, app, httptest.NewRequest(http.MethodGet, "/api/counts", nil))
	var counts models.CountsResponse
	require.NoError(t, json.Unmarshal(env.Data, &counts))
	assert.Equal(t, 3, counts.Total)
	assert.Equal(t, []models.CategoryCount{{Name: "Work", Count: 2}, {Name: "Life", Count: 1}}, counts.Categories)

	_, env = call(t, app, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	var names []string
	require.NoError(t, json.Unmarshal(env.Data, &names))
	assert.Equal(t, []string{"Work", "Life"}, names)
}

func TestCreateCopy(t *testing.T) {
	c := testutil.SampleCatalog(t)
	m := metrics.New(c, nil)
	app := newApp(c, m, nil)

	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{"known reason", `{"reason":"Too busy","category":"Work"}`, fiber.StatusAccepted, ""},
		{"category is optional", `{"reason":"I'm tired"}`, fiber.StatusAccepted, ""},
		{"unknown reason", `{"reason":"Made up","category":"Work"}`, fiber.StatusBadRequest, "unknown reason"},
		{"missing reason", `{"category":"Work"}`, fiber.StatusBadRequest, "reason is required"},
		{"malformed body", `{`, fiber.StatusBadRequest, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/copies", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			status, env := call(t, app, req)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.errMsg, env.Error)
		})
	}
}

func TestPopular(t *testing.T) {
	c := testutil.SampleCatalog(t)

	status, env := call(t, newApp(c, nil, nil), httptest.NewRequest(http.MethodGet, "/api/popular", nil))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "copy history is not enabled", env.Error)

	store := &fakePopular{counts: []models.CopyCount{{Category: "Work", Reason: "Too busy", Count: 4}}}
	status, env = call(t, newApp(c, nil, store), httptest.NewRequest(http.MethodGet, "/api/popular?limit=500", nil))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, maxPopularLimit, store.limit)

	var got []models.CopyCount
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].Count)

	failing := &fakePopular{err: errors.New("database down")}
	status, _ = call(t, newApp(c, nil, failing), httptest.NewRequest(http.MethodGet, "/api/popular", nil))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, defaultPopularLimit, failing.limit)
}
