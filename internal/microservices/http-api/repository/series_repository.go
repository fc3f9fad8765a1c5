package repository

import (
	"context"
	"fmt"

	"watchlog/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type SeriesRepository interface {
	List(ctx context.Context) ([]models.Series, error)
	GetByID(ctx context.Context, id int64) (*models.Series, error)
	GetWithSeasons(ctx context.Context, id int64) (*models.Series, error)
	Create(ctx context.Context, s *models.Series) error
	ListSeasons(ctx context.Context, seriesID int64) ([]models.Season, error)
	AddSeason(ctx context.Context, season *models.Season) error
}

type seriesRepository struct {
	db *gorm.DB
}

func NewSeriesRepository(db *gorm.DB) SeriesRepository {
	return &seriesRepository{db: db}
}

func (r *seriesRepository) List(ctx context.Context) ([]models.Series, error) {
	list := make([]models.Series, 0)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	return list, nil
}

func (r *seriesRepository) GetByID(ctx context.Context, id int64) (*models.Series, error) {
	var s models.Series
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *seriesRepository) GetWithSeasons(ctx context.Context, id int64) (*models.Series, error) {
	var s models.Series
	err := r.db.WithContext(ctx).
		Preload("Seasons", func(db *gorm.DB) *gorm.DB {
			return db.Order("number asc, id asc")
		}).
		First(&s, id).Error
	if err != nil {
		return nil, err
	}
	if s.Seasons == nil {
		s.Seasons = []models.Season{}
	}
	return &s, nil
}

func (r *seriesRepository) Create(ctx context.Context, s *models.Series) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("create series: %w", err)
	}
	return nil
}

func (r *seriesRepository) ListSeasons(ctx context.Context, seriesID int64) ([]models.Season, error) {
	list := make([]models.Season, 0)
	if err := r.db.WithContext(ctx).
		Where("series_id = ?", seriesID).
		Order("number asc, id asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return list, nil
}

// AddSeason inserts the season and raises the parent's total_seasons to the
// season number when it is larger, in one transaction. The raise is a
// conditional update so it never lowers the stored value.
func (r *seriesRepository) AddSeason(ctx context.Context, season *models.Season) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(season).Error; err != nil {
			return fmt.Errorf("create season: %w", err)
		}
		if err := tx.Model(&models.Series{}).
			Where("id = ? AND total_seasons < ?", season.SeriesID, season.Number).
			Update("total_seasons", season.Number).Error; err != nil {
			return fmt.Errorf("raise total seasons: %w", err)
		}
		return nil
	})
}
