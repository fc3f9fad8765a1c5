package service

import (
	"testing"

	"gorm.io/gorm"

	"watchlog/internal/microservices/http-api/cache"
	"watchlog/internal/microservices/http-api/repository"
	"watchlog/internal/testutil"
)

func stringPtr(s string) *string { return &s }
func intPtr(i int) *int          { return &i }

// services bundles the three services over one fresh database.
type services struct {
	db       *gorm.DB
	movies   MovieService
	series   SeriesService
	progress ProgressService
}

// newServices wires real repositories over SQLite. watchlistCache may be nil.
func newServices(t *testing.T, watchlistCache cache.WatchlistCache) services {
	t.Helper()
	db := testutil.NewTestDB(t)

	movieRepo := repository.NewMovieRepository(db)
	seriesRepo := repository.NewSeriesRepository(db)

	return services{
		db:     db,
		movies: NewMovieService(movieRepo),
		series: NewSeriesService(seriesRepo),
		progress: NewProgressService(
			repository.NewProgressRepository(db),
			repository.NewUserRepository(db),
			movieRepo,
			seriesRepo,
			watchlistCache,
			nil,
		),
	}
}
