package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"watchlog/internal/microservices/http-api/models"
	"watchlog/internal/microservices/http-api/repository"
)

type SeriesFields struct {
	Title        *string
	TotalSeasons *int
}

type SeasonFields struct {
	Number        *int
	EpisodesCount *int
}

type SeriesService interface {
	ListAll(ctx context.Context) ([]models.Series, error)
	Create(ctx context.Context, f SeriesFields) (*models.Series, error)
	GetByID(ctx context.Context, id int64) (*models.Series, error)
	AddSeason(ctx context.Context, seriesID int64, f SeasonFields) (*models.Season, error)
}

type seriesService struct {
	repo repository.SeriesRepository
}

func NewSeriesService(repo repository.SeriesRepository) SeriesService {
	return &seriesService{repo: repo}
}

// ListAll returns every series without its seasons.
func (s *seriesService) ListAll(ctx context.Context) ([]models.Series, error) {
	return s.repo.List(ctx)
}

func (s *seriesService) Create(ctx context.Context, f SeriesFields) (*models.Series, error) {
	if f.Title == nil || *f.Title == "" {
		return nil, validationf("field 'title' is required")
	}

	series := &models.Series{Title: *f.Title}
	if f.TotalSeasons != nil {
		series.TotalSeasons = *f.TotalSeasons
	}
	if err := s.repo.Create(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

// GetByID returns the series with its seasons ordered by number.
func (s *seriesService) GetByID(ctx context.Context, id int64) (*models.Series, error) {
	series, err := s.repo.GetWithSeasons(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("series %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get series: %w", err)
	}
	return series, nil
}

// AddSeason stores a new season. When its number is above the series'
// total_seasons the total is raised to it; a lower number leaves it alone.
func (s *seriesService) AddSeason(ctx context.Context, seriesID int64, f SeasonFields) (*models.Season, error) {
	if _, err := s.repo.GetByID(ctx, seriesID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("series %d not found", seriesID)
		}
		return nil, fmt.Errorf("get series: %w", err)
	}

	if f.Number == nil {
		return nil, validationf("field 'number' is required")
	}

	season := &models.Season{SeriesID: seriesID, Number: *f.Number}
	if f.EpisodesCount != nil {
		season.EpisodesCount = *f.EpisodesCount
	}
	if err := s.repo.AddSeason(ctx, season); err != nil {
		return nil, err
	}
	return season, nil
}
