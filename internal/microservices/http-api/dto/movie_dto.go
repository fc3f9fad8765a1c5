package dto

import (
	"time"

	"watchlog/internal/microservices/http-api/models"
	"watchlog/internal/microservices/http-api/service"
)

// MovieRequest is the body of POST /movies/ and PATCH /movies/:movie_id.
// An absent key leaves the field unset, null clears genre or release_year.
type MovieRequest struct {
	Title       models.Optional[string] `json:"title,omitzero"`
	Genre       models.Optional[string] `json:"genre,omitzero"`
	ReleaseYear models.Optional[int]    `json:"release_year,omitzero"`
}

func (r MovieRequest) ToFields() service.MovieFields {
	return service.MovieFields{
		Title:       r.Title.Ptr(),
		Genre:       r.Genre,
		ReleaseYear: r.ReleaseYear,
	}
}

type MovieResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Genre       *string   `json:"genre"`
	ReleaseYear *int      `json:"release_year"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromMovie(m models.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Genre:       m.Genre,
		ReleaseYear: m.ReleaseYear,
		CreatedAt:   m.CreatedAt,
	}
}

func FromMovies(list []models.Movie) []MovieResponse {
	resp := make([]MovieResponse, 0, len(list))
	for _, m := range list {
		resp = append(resp, FromMovie(m))
	}
	return resp
}
