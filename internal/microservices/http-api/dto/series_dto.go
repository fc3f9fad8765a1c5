package dto

import (
	"time"

	"watchlog/internal/microservices/http-api/models"
	"watchlog/internal/microservices/http-api/service"
)

// CreateSeriesRequest used for POST /series/
type CreateSeriesRequest struct {
	Title        *string `json:"title"`
	TotalSeasons *int    `json:"total_seasons"`
}

func (r CreateSeriesRequest) ToFields() service.SeriesFields {
	return service.SeriesFields{Title: r.Title, TotalSeasons: r.TotalSeasons}
}

// AddSeasonRequest used for POST /series/:series_id/seasons
type AddSeasonRequest struct {
	Number        *int `json:"number"`
	EpisodesCount *int `json:"episodes_count"`
}

func (r AddSeasonRequest) ToFields() service.SeasonFields {
	return service.SeasonFields{Number: r.Number, EpisodesCount: r.EpisodesCount}
}

type SeasonResponse struct {
	ID            int64 `json:"id"`
	SeriesID      int64 `json:"series_id"`
	Number        int   `json:"number"`
	EpisodesCount int   `json:"episodes_count"`
}

// SeriesResponse is the list shape, without seasons.
type SeriesResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	TotalSeasons int       `json:"total_seasons"`
	CreatedAt    time.Time `json:"created_at"`
}

// SeriesDetailResponse always carries the seasons array, empty or not.
type SeriesDetailResponse struct {
	SeriesResponse
	Seasons []SeasonResponse `json:"seasons"`
}

func FromSeries(s models.Series) SeriesResponse {
	return SeriesResponse{
		ID:           s.ID,
		Title:        s.Title,
		TotalSeasons: s.TotalSeasons,
		CreatedAt:    s.CreatedAt,
	}
}

func FromSeriesList(list []models.Series) []SeriesResponse {
	resp := make([]SeriesResponse, 0, len(list))
	for _, s := range list {
		resp = append(resp, FromSeries(s))
	}
	return resp
}

func FromSeriesDetail(s models.Series) SeriesDetailResponse {
	seasons := make([]SeasonResponse, 0, len(s.Seasons))
	for _, season := range s.Seasons {
		seasons = append(seasons, SeasonResponse{
			ID:            season.ID,
			SeriesID:      season.SeriesID,
			Number:        season.Number,
			EpisodesCount: season.EpisodesCount,
		})
	}
	return SeriesDetailResponse{SeriesResponse: FromSeries(s), Seasons: seasons}
}
