package handler_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"watchlog/internal/microservices/http-api/models"
	"watchlog/internal/microservices/http-api/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func stringPtr(s string) *string { return &s }
func intPtr(i int) *int          { return &i }

// --- MOCK SERVICES ---

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) ListAll(ctx context.Context) ([]models.Movie, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockMovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieService) Create(ctx context.Context, f service.MovieFields) (*models.Movie, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieService) Update(ctx context.Context, movie *models.Movie, f service.MovieFields) (*models.Movie, error) {
	args := m.Called(ctx, movie, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieService) Delete(ctx context.Context, movie *models.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

type MockSeriesService struct {
	mock.Mock
}

func (m *MockSeriesService) ListAll(ctx context.Context) ([]models.Series, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Series), args.Error(1)
}

func (m *MockSeriesService) Create(ctx context.Context, f service.SeriesFields) (*models.Series, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Series), args.Error(1)
}

func (m *MockSeriesService) GetByID(ctx context.Context, id int64) (*models.Series, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Series), args.Error(1)
}

func (m *MockSeriesService) AddSeason(ctx context.Context, seriesID int64, f service.SeasonFields) (*models.Season, error) {
	args := m.Called(ctx, seriesID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Season), args.Error(1)
}

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) ListUserWatchlist(ctx context.Context, userID int64) ([]models.WatchEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WatchEntry), args.Error(1)
}

func (m *MockProgressService) AddMovie(ctx context.Context, userID, movieID int64) (*models.WatchEntry, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchEntry), args.Error(1)
}

func (m *MockProgressService) AddSeries(ctx context.Context, userID, seriesID int64) (*models.WatchEntry, error) {
	args := m.Called(ctx, userID, seriesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchEntry), args.Error(1)
}

func (m *MockProgressService) UpdateSeriesProgress(ctx context.Context, userID, seriesID int64, patch service.ProgressPatch) (*models.WatchEntry, error) {
	args := m.Called(ctx, userID, seriesID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchEntry), args.Error(1)
}
