package dto

import (
	"fmt"
	"time"

	"watchlog/internal/microservices/http-api/models"
	"watchlog/internal/microservices/http-api/service"
)

// UpdateProgressRequest is the body of PATCH /progress/series/:series_id.
// Only the fields present in the JSON are applied. current_season and
// current_episode may be null, the other fields may not.
type UpdateProgressRequest struct {
	CurrentSeason   models.Optional[int]    `json:"current_season,omitzero"`
	CurrentEpisode  models.Optional[int]    `json:"current_episode,omitzero"`
	WatchedEpisodes models.Optional[int]    `json:"watched_episodes,omitzero"`
	TotalEpisodes   models.Optional[int]    `json:"total_episodes,omitzero"`
	Status          models.Optional[string] `json:"status,omitzero"`
}

func (r UpdateProgressRequest) ToPatch() (service.ProgressPatch, error) {
	required := []struct {
		name string
		null bool
	}{
		{"watched_episodes", r.WatchedEpisodes.Null},
		{"total_episodes", r.TotalEpisodes.Null},
		{"status", r.Status.Null},
	}
	for _, f := range required {
		if f.null {
			return service.ProgressPatch{}, &service.Error{
				Kind: service.KindValidation,
				Msg:  fmt.Sprintf("field '%s' cannot be null", f.name),
			}
		}
	}
	return service.ProgressPatch{
		CurrentSeason:   r.CurrentSeason,
		CurrentEpisode:  r.CurrentEpisode,
		WatchedEpisodes: r.WatchedEpisodes.Ptr(),
		TotalEpisodes:   r.TotalEpisodes.Ptr(),
		Status:          r.Status.Ptr(),
	}, nil
}

type WatchEntryResponse struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	ContentType       string    `json:"content_type"`
	ContentID         int64     `json:"content_id"`
	Status            string    `json:"status"`
	CurrentSeason     *int      `json:"current_season"`
	CurrentEpisode    *int      `json:"current_episode"`
	WatchedEpisodes   int       `json:"watched_episodes"`
	TotalEpisodes     int       `json:"total_episodes"`
	PercentageWatched float64   `json:"percentage_watched"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromWatchEntry(e models.WatchEntry) WatchEntryResponse {
	ref := e.Content()
	return WatchEntryResponse{
		ID:                e.ID,
		UserID:            e.UserID,
		ContentType:       string(ref.Kind),
		ContentID:         ref.ID,
		Status:            string(e.Status),
		CurrentSeason:     e.CurrentSeason,
		CurrentEpisode:    e.CurrentEpisode,
		WatchedEpisodes:   e.WatchedEpisodes,
		TotalEpisodes:     e.TotalEpisodes,
		PercentageWatched: e.PercentageWatched(),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func FromWatchEntries(list []models.WatchEntry) []WatchEntryResponse {
	resp := make([]WatchEntryResponse, 0, len(list))
	for _, e := range list {
		resp = append(resp, FromWatchEntry(e))
	}
	return resp
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
