package client

// http_client.go = typed access to the WatchLog HTTP API for the CLI.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"watchlog/internal/microservices/http-api/dto"
)

// APIError is a non-2xx answer. Detail is the server's "detail" message.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Detail, e.StatusCode)
}

type HTTPClient struct {
	baseURL    string
	userID     int64
	httpClient *http.Client
}

func NewHTTPClient(apiURL string, userID int64) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		userID:  userID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != 0 {
		req.Header.Set("X-User-Id", strconv.FormatInt(c.userID, 10))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
			apiErr.Detail = er.Detail
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func idPath(prefix string, id int64) string {
	return prefix + strconv.FormatInt(id, 10)
}

// ---------- movies ----------

func (c *HTTPClient) ListMovies(ctx context.Context) ([]dto.MovieResponse, error) {
	var out []dto.MovieResponse
	err := c.do(ctx, http.MethodGet, "/movies/", nil, &out)
	return out, err
}

func (c *HTTPClient) CreateMovie(ctx context.Context, req dto.MovieRequest) (*dto.MovieResponse, error) {
	var out dto.MovieResponse
	if err := c.do(ctx, http.MethodPost, "/movies/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetMovie(ctx context.Context, id int64) (*dto.MovieResponse, error) {
	var out dto.MovieResponse
	if err := c.do(ctx, http.MethodGet, idPath("/movies/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- series ----------

func (c *HTTPClient) ListSeries(ctx context.Context) ([]dto.SeriesResponse, error) {
	var out []dto.SeriesResponse
	err := c.do(ctx, http.MethodGet, "/series/", nil, &out)
	return out, err
}

func (c *HTTPClient) CreateSeries(ctx context.Context, req dto.CreateSeriesRequest) (*dto.SeriesResponse, error) {
	var out dto.SeriesResponse
	if err := c.do(ctx, http.MethodPost, "/series/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetSeries(ctx context.Context, id int64) (*dto.SeriesDetailResponse, error) {
	var out dto.SeriesDetailResponse
	if err := c.do(ctx, http.MethodGet, idPath("/series/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AddSeason(ctx context.Context, seriesID int64, req dto.AddSeasonRequest) (*dto.SeriesDetailResponse, error) {
	var out dto.SeriesDetailResponse
	if err := c.do(ctx, http.MethodPost, idPath("/series/", seriesID)+"/seasons", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- watchlist ----------

func (c *HTTPClient) Watchlist(ctx context.Context) ([]dto.WatchEntryResponse, error) {
	var out []dto.WatchEntryResponse
	err := c.do(ctx, http.MethodGet, "/me/watchlist", nil, &out)
	return out, err
}

func (c *HTTPClient) WatchMovie(ctx context.Context, movieID int64) (*dto.WatchEntryResponse, error) {
	var out dto.WatchEntryResponse
	if err := c.do(ctx, http.MethodPost, idPath("/watchlist/movies/", movieID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) WatchSeries(ctx context.Context, seriesID int64) (*dto.WatchEntryResponse, error) {
	var out dto.WatchEntryResponse
	if err := c.do(ctx, http.MethodPost, idPath("/watchlist/series/", seriesID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProgress(ctx context.Context, seriesID int64, req dto.UpdateProgressRequest) (*dto.WatchEntryResponse, error) {
	var out dto.WatchEntryResponse
	if err := c.do(ctx, http.MethodPatch, idPath("/progress/series/", seriesID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
