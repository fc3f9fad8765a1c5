package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"watchlog/internal/microservices/http-api/models"
	"watchlog/internal/microservices/http-api/repository"
)

// MovieFields carries the movie attributes of a create or partial update.
// Absent fields are left untouched on update. Genre and ReleaseYear may be
// sent as null to clear them.
type MovieFields struct {
	Title       *string
	Genre       models.Optional[string]
	ReleaseYear models.Optional[int]
}

// MovieService does not validate input, the handler checks title before Create.
type MovieService interface {
	ListAll(ctx context.Context) ([]models.Movie, error)
	Get(ctx context.Context, id int64) (*models.Movie, error)
	Create(ctx context.Context, f MovieFields) (*models.Movie, error)
	Update(ctx context.Context, m *models.Movie, f MovieFields) (*models.Movie, error)
	Delete(ctx context.Context, m *models.Movie) error
}

type movieService struct {
	repo repository.MovieRepository
}

func NewMovieService(repo repository.MovieRepository) MovieService {
	return &movieService{repo: repo}
}

func (s *movieService) ListAll(ctx context.Context) ([]models.Movie, error) {
	return s.repo.List(ctx)
}

func (s *movieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	m, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("movie %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return m, nil
}

func (s *movieService) Create(ctx context.Context, f MovieFields) (*models.Movie, error) {
	m := &models.Movie{
		Genre:       f.Genre.Ptr(),
		ReleaseYear: f.ReleaseYear.Ptr(),
	}
	if f.Title != nil {
		m.Title = *f.Title
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *movieService) Update(ctx context.Context, m *models.Movie, f MovieFields) (*models.Movie, error) {
	if f.Title != nil {
		m.Title = *f.Title
	}
	if f.Genre.Set {
		m.Genre = f.Genre.Ptr()
	}
	if f.ReleaseYear.Set {
		m.ReleaseYear = f.ReleaseYear.Ptr()
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *movieService) Delete(ctx context.Context, m *models.Movie) error {
	err := s.repo.Delete(ctx, m.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("movie %d not found", m.ID)
	}
	return err
}
