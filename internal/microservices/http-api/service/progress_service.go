package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"watchlog/internal/microservices/http-api/cache"
	"watchlog/internal/microservices/http-api/models"
	"watchlog/internal/microservices/http-api/repository"
)

// ProgressPatch lists the progress fields a client may overwrite. Absent
// fields are left as they are, a null season or episode clears it. Numeric
// values are stored without range checks.
type ProgressPatch struct {
	CurrentSeason   models.Optional[int]
	CurrentEpisode  models.Optional[int]
	WatchedEpisodes *int
	TotalEpisodes   *int
	Status          *string
}

func (p ProgressPatch) Empty() bool {
	return !p.CurrentSeason.Set && !p.CurrentEpisode.Set &&
		p.WatchedEpisodes == nil && p.TotalEpisodes == nil && p.Status == nil
}

// columnValue maps a null field to SQL NULL.
func columnValue(o models.Optional[int]) any {
	if o.Null {
		return nil
	}
	return o.Value
}

type ProgressService interface {
	ListUserWatchlist(ctx context.Context, userID int64) ([]models.WatchEntry, error)
	AddMovie(ctx context.Context, userID, movieID int64) (*models.WatchEntry, error)
	AddSeries(ctx context.Context, userID, seriesID int64) (*models.WatchEntry, error)
	UpdateSeriesProgress(ctx context.Context, userID, seriesID int64, patch ProgressPatch) (*models.WatchEntry, error)
}

type progressService struct {
	repo       repository.ProgressRepository
	userRepo   repository.UserRepository
	movieRepo  repository.MovieRepository
	seriesRepo repository.SeriesRepository
	cache      cache.WatchlistCache
	log        *zap.Logger
}

func NewProgressService(
	repo repository.ProgressRepository,
	userRepo repository.UserRepository,
	movieRepo repository.MovieRepository,
	seriesRepo repository.SeriesRepository,
	watchlistCache cache.WatchlistCache,
	log *zap.Logger,
) ProgressService {
	if watchlistCache == nil {
		watchlistCache = cache.NopCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &progressService{
		repo:       repo,
		userRepo:   userRepo,
		movieRepo:  movieRepo,
		seriesRepo: seriesRepo,
		cache:      watchlistCache,
		log:        log,
	}
}

// ---------- internal helpers ----------

func (s *progressService) getUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("user %d does not exist", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *progressService) getMovie(ctx context.Context, movieID int64) (*models.Movie, error) {
	movie, err := s.movieRepo.GetByID(ctx, movieID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("movie %d does not exist", movieID)
	}
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return movie, nil
}

func (s *progressService) getSeries(ctx context.Context, seriesID int64) (*models.Series, error) {
	series, err := s.seriesRepo.GetByID(ctx, seriesID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("series %d does not exist", seriesID)
	}
	if err != nil {
		return nil, fmt.Errorf("get series: %w", err)
	}
	return series, nil
}

// findEntry returns nil without error when the user has no entry for ref.
func (s *progressService) findEntry(ctx context.Context, userID int64, ref models.ContentRef) (*models.WatchEntry, error) {
	entry, err := s.repo.Find(ctx, userID, ref)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find watch entry: %w", err)
	}
	return entry, nil
}

// insertEntry creates the entry unless the user already tracks the content.
// The unique index catches the race the pre-check leaves open.
func (s *progressService) insertEntry(ctx context.Context, entry *models.WatchEntry, duplicateMsg string) (*models.WatchEntry, error) {
	existing, err := s.findEntry(ctx, entry.UserID, entry.Content())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, validationf("%s", duplicateMsg)
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationf("%s", duplicateMsg)
		}
		return nil, err
	}

	s.invalidate(ctx, entry.UserID)
	s.log.Info("watchlist entry added",
		zap.Int64("user_id", entry.UserID),
		zap.String("content", entry.Content().String()),
	)
	return entry, nil
}

func (s *progressService) invalidate(ctx context.Context, userID int64) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn("watchlist cache invalidation failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// ---------- public API used by the handlers ----------

// ListUserWatchlist returns the user's entries, newest first.
func (s *progressService) ListUserWatchlist(ctx context.Context, userID int64) ([]models.WatchEntry, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	entries, hit, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.log.Warn("watchlist cache read failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	if hit {
		return entries, nil
	}

	// taken before the load so a concurrent invalidation voids the Set below
	version, verErr := s.cache.Version(ctx, userID)
	if verErr != nil {
		s.log.Warn("watchlist cache version read failed", zap.Int64("user_id", userID), zap.Error(verErr))
	}

	entries, err = s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if verErr == nil {
		if err := s.cache.Set(ctx, userID, version, entries); err != nil {
			s.log.Warn("watchlist cache write failed", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return entries, nil
}

// AddMovie tracks a movie as one episode out of one.
func (s *progressService) AddMovie(ctx context.Context, userID, movieID int64) (*models.WatchEntry, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	movie, err := s.getMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	entry := models.NewWatchEntry(user.ID, models.MovieRef(movie.ID))
	entry.WatchedEpisodes = 1
	entry.TotalEpisodes = 1
	return s.insertEntry(ctx, entry, "movie is already in your watchlist")
}

// AddSeries tracks a series starting at season 1 episode 1. The episode total
// is the sum of the episode counts of its seasons, taken as stored.
func (s *progressService) AddSeries(ctx context.Context, userID, seriesID int64) (*models.WatchEntry, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	series, err := s.getSeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	seasons, err := s.seriesRepo.ListSeasons(ctx, series.ID)
	if err != nil {
		return nil, err
	}
	totalEpisodes := 0
	for _, season := range seasons {
		totalEpisodes += season.EpisodesCount
	}

	first := 1
	entry := models.NewWatchEntry(user.ID, models.SeriesRef(series.ID))
	entry.CurrentSeason = &first
	entry.CurrentEpisode = &first
	entry.WatchedEpisodes = 0
	entry.TotalEpisodes = totalEpisodes
	return s.insertEntry(ctx, entry, "series is already in your watchlist")
}

// UpdateSeriesProgress overwrites the fields present in patch and stamps
// updated_at. Status must be one of the known watch statuses.
func (s *progressService) UpdateSeriesProgress(ctx context.Context, userID, seriesID int64, patch ProgressPatch) (*models.WatchEntry, error) {
	entry, err := s.findEntry(ctx, userID, models.SeriesRef(seriesID))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, notFoundf("series %d is not in your watchlist yet", seriesID)
	}

	fields := map[string]any{}
	if patch.CurrentSeason.Set {
		fields["current_season"] = columnValue(patch.CurrentSeason)
	}
	if patch.CurrentEpisode.Set {
		fields["current_episode"] = columnValue(patch.CurrentEpisode)
	}
	if patch.WatchedEpisodes != nil {
		fields["watched_episodes"] = *patch.WatchedEpisodes
	}
	if patch.TotalEpisodes != nil {
		fields["total_episodes"] = *patch.TotalEpisodes
	}
	if patch.Status != nil {
		status, err := models.ParseWatchStatus(*patch.Status)
		if err != nil {
			return nil, validationf("%s", err.Error())
		}
		fields["status"] = status
	}
	fields["updated_at"] = time.Now().UTC()

	if err := s.repo.Update(ctx, entry, fields); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return entry, nil
}
