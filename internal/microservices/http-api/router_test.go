package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"watchlog/database"
	"watchlog/internal/config"
	httpapi "watchlog/internal/microservices/http-api"
	"watchlog/internal/microservices/http-api/cache"
	"watchlog/internal/microservices/http-api/dto"
	"watchlog/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		GoEnv:             "test",
		RequestTimeout:    5 * time.Second,
		RateLimitRPS:      1e6,
		RateLimitBurst:    1e6,
		PrometheusEnabled: true,
		CORSOrigins:       []string{"http://localhost:3000"},
	}
}

type apiClient struct {
	t      testing.TB
	router http.Handler
}

func newAPI(t testing.TB, db *gorm.DB, watchlistCache cache.WatchlistCache) *apiClient {
	t.Helper()
	_, err := database.SeedDefaultUser(t.Context(), db)
	require.NoError(t, err)
	r := httpapi.NewRouter(httpapi.Dependencies{Config: testConfig(), DB: db, Cache: watchlistCache})
	return &apiClient{t: t, router: r}
}

func (a *apiClient) do(method, path, userID, body string, out any) int {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestAvatarWalkthrough(t *testing.T) {
	api := newAPI(t, testutil.NewTestDB(t), nil)

	var series dto.SeriesResponse
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/series/", "", `{"title":"Avatar"}`, &series))
	assert.Equal(t, 0, series.TotalSeasons)

	var detail dto.SeriesDetailResponse
	path := "/series/" + itoa(series.ID)
	require.Equal(t, http.StatusCreated,
		api.do(http.MethodPost, path+"/seasons", "", `{"number":1,"episodes_count":12}`, &detail))
	assert.Equal(t, 1, detail.TotalSeasons)
	require.Len(t, detail.Seasons, 1)

	var entry dto.WatchEntryResponse
	require.Equal(t, http.StatusCreated,
		api.do(http.MethodPost, "/watchlist/series/"+itoa(series.ID), "1", "", &entry))
	assert.Equal(t, "series", entry.ContentType)
	assert.Equal(t, 12, entry.TotalEpisodes)
	assert.Equal(t, 0, entry.WatchedEpisodes)
	assert.Equal(t, 1, *entry.CurrentSeason)
	assert.Equal(t, 1, *entry.CurrentEpisode)
	assert.Equal(t, 0.0, entry.PercentageWatched)

	var patched dto.WatchEntryResponse
	require.Equal(t, http.StatusOK,
		api.do(http.MethodPatch, "/progress/series/"+itoa(series.ID), "1", `{"watched_episodes":5}`, &patched))
	assert.Equal(t, 5, patched.WatchedEpisodes)
	assert.Equal(t, 41.67, patched.PercentageWatched)
	assert.Equal(t, "watching", patched.Status)

	var list []dto.WatchEntryResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/me/watchlist", "1", "", &list))
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].WatchedEpisodes)
}

func TestMovieFlow(t *testing.T) {
	api := newAPI(t, testutil.NewTestDB(t), nil)

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/movies/", "", `{"genre":"drama"}`, &errResp))
	assert.Equal(t, "field 'title' is required", errResp.Detail)

	var movies []dto.MovieResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/movies/", "", "", &movies))
	assert.Empty(t, movies, "rejected create leaves no row")

	var movie dto.MovieResponse
	require.Equal(t, http.StatusCreated,
		api.do(http.MethodPost, "/movies/", "", `{"title":"Heat","release_year":1995}`, &movie))

	assert.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/watchlist/movies/"+itoa(movie.ID), "1", "", nil))
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/watchlist/movies/"+itoa(movie.ID), "1", "", &errResp))
	assert.Equal(t, "movie is already in your watchlist", errResp.Detail)

	var list []dto.WatchEntryResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/me/watchlist", "1", "", &list))
	require.Len(t, list, 1)
	assert.Equal(t, 100.0, list[0].PercentageWatched)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, "/watchlist/movies/999", "1", "", nil))
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/me/watchlist", "42", "", nil))
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/me/watchlist", "", "", nil))
}

func TestWatchlistThroughRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	api := newAPI(t, testutil.NewTestDB(t), cache.NewRedisWatchlistCache(client, time.Minute))

	var series dto.SeriesResponse
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/series/", "", `{"title":"Dark"}`, &series))

	var list []dto.WatchEntryResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/me/watchlist", "1", "", &list))
	assert.Empty(t, list)
	assert.True(t, mr.Exists("watchlist:user:1"))

	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/watchlist/series/"+itoa(series.ID), "1", "", nil))
	assert.False(t, mr.Exists("watchlist:user:1"), "add must invalidate the cached list")

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/me/watchlist", "1", "", &list))
	assert.Len(t, list, 1)
	assert.True(t, mr.Exists("watchlist:user:1"))
	version, err := mr.Get("watchlist:user:1:version")
	require.NoError(t, err)
	assert.Equal(t, "1", version)
}

func TestInfraRoutes(t *testing.T) {
	api := newAPI(t, testutil.NewTestDB(t), nil)

	var health map[string]string
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/health", "", "", &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/ready", "", "", nil))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "watchlog_http_requests_total")

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/nope", "", "", &errResp))
	assert.Equal(t, "not found", errResp.Detail)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	r := httpapi.NewRouter(httpapi.Dependencies{Config: cfg, DB: testutil.NewTestDB(t)})

	codes := make([]int, 0, 2)
	for _, forwarded := range []string{"1.1.1.1", "2.2.2.2"} {
		req := httptest.NewRequest(http.MethodGet, "/movies/", nil)
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
