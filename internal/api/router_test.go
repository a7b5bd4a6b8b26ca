package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"recipe-suggester/internal/core/cache"
	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/core/matcher"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySource struct {
	mu   sync.Mutex
	data *catalog.Data
	err  error
}

func (s *memorySource) Name() string { return "memory" }

func (s *memorySource) Load(context.Context) (*catalog.Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.err
}

func (s *memorySource) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func testCatalog() *catalog.Data {
	return &catalog.Data{
		Ingredients: []catalog.Ingredient{
			{ID: 1, Name: "rice", Category: "grain"},
			{ID: 2, Name: "moong dal", Category: "legume"},
			{ID: 3, Name: "turmeric", Category: "spice"},
			{ID: 4, Name: "ghee", Category: "dairy"},
			{ID: 5, Name: "butter", Category: "dairy"},
			{ID: 6, Name: "margarine", Category: "dairy"},
		},
		Recipes: []catalog.Recipe{
			{ID: 1, Name: "Khichdi", Cuisine: "Gujarati", Servings: 3,
				Required: []string{"rice", "moong dal", "turmeric"},
				Optional: []string{"ghee"}},
			{ID: 2, Name: "Butter Rice", Servings: 2,
				Required: []string{"rice", "butter"}},
		},
		Substitutions: []catalog.Substitution{
			{Ingredient: "butter", Substitute: "margarine", Score: 0.8},
			{Ingredient: "ghee", Substitute: "butter", Score: 0.9},
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Env: "test", Version: "test"},
		Server: config.ServerConfig{Port: 5000, RequestTimeout: 5 * time.Second, MaxBodyBytes: 1 << 10},
		Matcher: config.MatcherConfig{
			DefaultMaxResults: 20,
			MaxResultsLimit:   100,
			SubstituteLimit:   6,
		},
		RateLimit:   config.RateLimitConfig{Enabled: false},
		DedupWindow: time.Minute,
	}
}

type testServer struct {
	router *gin.Engine
	source *memorySource
	holder *catalog.Holder
}

func newTestServer(t *testing.T, cfg *config.Config, load bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	source := &memorySource{data: testCatalog()}
	holder := catalog.NewHolder(source, false)
	if load {
		_, err := holder.Reload(context.Background())
		require.NoError(t, err)
	}

	c := cache.NewManager(config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })

	router, err := SetupRouter(cfg, matcher.NewService(holder, c, cfg.Matcher), holder)
	require.NoError(t, err)
	return &testServer{router: router, source: source, holder: holder}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestSuggest(t *testing.T) {
	srv := newTestServer(t, testConfig(), true)

	w := srv.do(http.MethodPost, "/api/v1/suggest", `{"ingredients": ["Rice", "moong dal", "turmeric"], "max_results": 5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[struct {
		Suggestions    []matcher.Suggestion `json:"suggestions"`
		CatalogVersion int64                `json:"catalog_version"`
		Cached         bool                 `json:"cached"`
		RequestID      string               `json:"request_id"`
	}](t, w)
	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, "Khichdi", resp.Suggestions[0].Name)
	assert.Equal(t, int64(1), resp.CatalogVersion)
	assert.False(t, resp.Cached)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, resp.RequestID, w.Header().Get("X-Request-ID"))

	w = srv.do(http.MethodPost, "/api/v1/suggest", `{"ingredients": ["turmeric", "rice", "moong dal"], "max_results": 5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[map[string]any](t, w)["cached"].(bool))
}

func TestSuggest_Substitution(t *testing.T) {
	srv := newTestServer(t, testConfig(), true)

	w := srv.do(http.MethodPost, "/api/v1/suggest", `{"ingredients": ["rice", "margarine"], "max_results": 1}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Suggestions []matcher.Suggestion `json:"suggestions"`
	}](t, w)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "Butter Rice", resp.Suggestions[0].Name)
	assert.Equal(t, matcher.SubstitutionChoice{Substitute: "margarine", Score: 0.8, Reason: matcher.ReasonDirect},
		resp.Suggestions[0].SubstitutionPlan["butter"])

	w = srv.do(http.MethodPost, "/api/v1/suggest", `{"ingredients": ["rice", "margarine"], "max_results": 1, "allow_substitution": false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"substitution_plan":{}`)
}

func TestSuggest_Errors(t *testing.T) {
	srv := newTestServer(t, testConfig(), true)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{"ingredients": [`, http.StatusBadRequest, common.ErrCodeInvalidRequest},
		{"unknown field", `{"ingredients": [], "extra": 1}`, http.StatusBadRequest, common.ErrCodeInvalidRequest},
		{"wrong type", `{"ingredients": "rice"}`, http.StatusBadRequest, common.ErrCodeInvalidRequest},
		{"negative max results", `{"ingredients": ["rice"], "max_results": -1}`, http.StatusBadRequest, common.ErrCodeInvalidRequest},
		{"empty body", ``, http.StatusBadRequest, common.ErrCodeInvalidRequest},
		{"too large", `{"ingredients": ["` + strings.Repeat("a", 2048) + `"]}`, http.StatusRequestEntityTooLarge, common.ErrCodeRequestTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(http.MethodPost, "/api/v1/suggest", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			resp := decode[common.ErrorResponse](t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestSuggest_TooManyIngredients(t *testing.T) {
	cfg := testConfig()
	cfg.Server.MaxBodyBytes = 1 << 20
	srv := newTestServer(t, cfg, true)

	names := make([]string, matcher.MaxPantryItems+1)
	for i := range names {
		names[i] = "x"
	}
	body, err := json.Marshal(map[string]any{"ingredients": names})
	require.NoError(t, err)

	w := srv.do(http.MethodPost, "/api/v1/suggest", string(body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, common.ErrCodeInvalidPantry, decode[common.ErrorResponse](t, w).Code)
}

func TestCatalogUnavailable(t *testing.T) {
	srv := newTestServer(t, testConfig(), false)

	w := srv.do(http.MethodPost, "/api/v1/suggest", `{"ingredients": ["rice"]}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode[common.ErrorResponse](t, w)
	assert.Equal(t, common.ErrCodeCatalogUnavailable, resp.Code)
	assert.Equal(t, "Recipe matcher unavailable. Check server logs.", resp.Error)

	for _, path := range []string{"/api/v1/ingredients", "/api/v1/ingredients/ghee/substitutes", "/api/v1/catalog"} {
		w = srv.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}

	assert.Equal(t, http.StatusServiceUnavailable, srv.do(http.MethodGet, "/ready", "").Code)

	w = srv.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", decode[map[string]any](t, w)["status"])

	// 載入成功後恢復服務
	w = srv.do(http.MethodPost, "/api/v1/catalog/reload", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/ready", "").Code)
}

func TestIngredients(t *testing.T) {
	srv := newTestServer(t, testConfig(), true)

	w := srv.do(http.MethodGet, "/api/v1/ingredients", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 6, decode[suggestIngredients](t, w).Count)

	w = srv.do(http.MethodGet, "/api/v1/ingredients?category=dairy", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[suggestIngredients](t, w)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, "ghee", resp.Ingredients[0].Name)
}

type suggestIngredients struct {
	Ingredients []catalog.Ingredient `json:"ingredients"`
	Count       int                  `json:"count"`
}

func TestSubstitutes(t *testing.T) {
	srv := newTestServer(t, testConfig(), true)

	w := srv.do(http.MethodGet, "/api/v1/ingredients/ghee/substitutes?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[matcher.SubstitutesResult](t, w)
	assert.Equal(t, "ghee", resp.Ingredient)
	assert.Equal(t, []matcher.Candidate{
		{Name: "butter", Score: 0.9, Reason: matcher.ReasonDirect},
		{Name: "margarine", Score: matcher.CategoryScore, Reason: matcher.ReasonCategory},
	}, resp.Candidates)

	w = srv.do(http.MethodGet, "/api/v1/ingredients/ghee/substitutes?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(http.MethodGet, "/api/v1/ingredients/saffron/substitutes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"candidates":[]`)
}

func TestCatalogAndReload(t *testing.T) {
	srv := newTestServer(t, testConfig(), true)

	w := srv.do(http.MethodGet, "/api/v1/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, info["version"])
	assert.EqualValues(t, 2, info["recipes"])

	w = srv.do(http.MethodPost, "/api/v1/catalog/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reloaded", decode[map[string]any](t, w)["status"])

	// 時間窗內重複的重新載入請求被拒絕
	w = srv.do(http.MethodPost, "/api/v1/catalog/reload", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestReloadFailureKeepsServing(t *testing.T) {
	cfg := testConfig()
	cfg.DedupWindow = time.Nanosecond
	srv := newTestServer(t, cfg, true)
	srv.source.fail(errors.New("source offline"))

	w := srv.do(http.MethodPost, "/api/v1/catalog/reload", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, common.ErrCodeCatalogReloadFailed, decode[common.ErrorResponse](t, w).Code)

	w = srv.do(http.MethodPost, "/api/v1/suggest", `{"ingredients": ["rice"]}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Hour}
	srv := newTestServer(t, cfg, true)

	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/api/v1/catalog", "").Code)
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/api/v1/catalog", "").Code)

	w := srv.do(http.MethodGet, "/api/v1/catalog", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// 健康檢查不受限流
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/live", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig(), true)
	srv.do(http.MethodPost, "/api/v1/suggest", `{"ingredients": ["rice"]}`)

	w := srv.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("recipe_suggest_requests_total")))
}

func TestSetupRouter_RequiresDependencies(t *testing.T) {
	_, err := SetupRouter(testConfig(), nil, nil)
	assert.Error(t, err)
}
