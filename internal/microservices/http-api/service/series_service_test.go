package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlog/internal/microservices/http-api/models"
)

func TestSeriesService_Create(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()

	series, err := s.series.Create(ctx, SeriesFields{Title: stringPtr("Avatar")})
	require.NoError(t, err)
	assert.Equal(t, 0, series.TotalSeasons)

	withTotal, err := s.series.Create(ctx, SeriesFields{Title: stringPtr("One Piece"), TotalSeasons: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, withTotal.TotalSeasons)

	list, err := s.series.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Empty(t, list[0].Seasons)
}

func TestSeriesService_Create_RequiresTitle(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()

	for _, f := range []SeriesFields{{}, {Title: stringPtr("")}} {
		_, err := s.series.Create(ctx, f)
		assert.ErrorIs(t, err, ErrValidation)
	}

	var count int64
	require.NoError(t, s.db.Model(&models.Series{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeriesService_Create_AcceptsWhitespaceTitle(t *testing.T) {
	s := newServices(t, nil)

	series, err := s.series.Create(context.Background(), SeriesFields{Title: stringPtr("  ")})
	require.NoError(t, err)
	assert.Equal(t, "  ", series.Title)
}

func TestSeriesService_GetByID(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()

	_, err := s.series.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	series, err := s.series.Create(ctx, SeriesFields{Title: stringPtr("Avatar")})
	require.NoError(t, err)

	got, err := s.series.GetByID(ctx, series.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Seasons)
	assert.Empty(t, got.Seasons)
}

func TestSeriesService_AddSeason_Errors(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()

	_, err := s.series.AddSeason(ctx, 99, SeasonFields{Number: intPtr(1)})
	assert.ErrorIs(t, err, ErrNotFound)

	series, err := s.series.Create(ctx, SeriesFields{Title: stringPtr("Avatar")})
	require.NoError(t, err)

	_, err = s.series.AddSeason(ctx, series.ID, SeasonFields{EpisodesCount: intPtr(12)})
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "field 'number' is required")
}

func TestSeriesService_AddSeason_RaisesTotalSeasons(t *testing.T) {
	s := newServices(t, nil)
	ctx := context.Background()

	series, err := s.series.Create(ctx, SeriesFields{Title: stringPtr("Long Runner"), TotalSeasons: intPtr(3)})
	require.NoError(t, err)

	_, err = s.series.AddSeason(ctx, series.ID, SeasonFields{Number: intPtr(5), EpisodesCount: intPtr(10)})
	require.NoError(t, err)
	got, err := s.series.GetByID(ctx, series.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalSeasons)

	season, err := s.series.AddSeason(ctx, series.ID, SeasonFields{Number: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 0, season.EpisodesCount)

	got, err = s.series.GetByID(ctx, series.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalSeasons)
	require.Len(t, got.Seasons, 2)
	assert.Equal(t, 2, got.Seasons[0].Number)
	assert.Equal(t, 5, got.Seasons[1].Number)
}
