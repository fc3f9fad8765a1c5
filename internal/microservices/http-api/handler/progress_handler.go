package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"watchlog/internal/microservices/http-api/dto"
	"watchlog/internal/microservices/http-api/middleware"
	"watchlog/internal/microservices/http-api/service"
)

type ProgressHandler struct {
	svc  service.ProgressService
	opts Options
}

func NewProgressHandler(svc service.ProgressService, opts Options) *ProgressHandler {
	return &ProgressHandler{svc: svc, opts: opts.withDefaults()}
}

// RegisterRoutes mounts the per-user routes. Every one of them needs the
// X-User-Id header.
func (h *ProgressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	user := rg.Group("", middleware.RequireUserID())
	user.GET("/me/watchlist", h.Watchlist)
	user.POST("/watchlist/movies/:movie_id", h.AddMovie)
	user.POST("/watchlist/series/:series_id", h.AddSeries)
	user.PATCH("/progress/series/:series_id", h.UpdateSeriesProgress)
}

func currentUser(c *gin.Context) (int64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "X-User-Id header is required"})
	}
	return id, ok
}

func (h *ProgressHandler) Watchlist(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	entries, err := h.svc.ListUserWatchlist(ctx, userID)
	if err != nil {
		respondError(c, h.opts.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromWatchEntries(entries))
}

func (h *ProgressHandler) AddMovie(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	movieID, ok := parseID(c, "movie_id", "movie")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	entry, err := h.svc.AddMovie(ctx, userID, movieID)
	if err != nil {
		respondError(c, h.opts.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromWatchEntry(*entry))
}

func (h *ProgressHandler) AddSeries(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	seriesID, ok := parseID(c, "series_id", "series")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	entry, err := h.svc.AddSeries(ctx, userID, seriesID)
	if err != nil {
		respondError(c, h.opts.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromWatchEntry(*entry))
}

func (h *ProgressHandler) UpdateSeriesProgress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	seriesID, ok := parseID(c, "series_id", "series")
	if !ok {
		return
	}
	var in dto.UpdateProgressRequest
	if !bindJSON(c, &in) {
		return
	}
	patch, err := in.ToPatch()
	if err != nil {
		respondError(c, h.opts.Logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	entry, err := h.svc.UpdateSeriesProgress(ctx, userID, seriesID, patch)
	if err != nil {
		respondError(c, h.opts.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromWatchEntry(*entry))
}
