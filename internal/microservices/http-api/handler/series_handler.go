package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"watchlog/internal/microservices/http-api/dto"
	"watchlog/internal/microservices/http-api/service"
)

type SeriesHandler struct {
	svc  service.SeriesService
	opts Options
}

func NewSeriesHandler(svc service.SeriesService, opts Options) *SeriesHandler {
	return &SeriesHandler{svc: svc, opts: opts.withDefaults()}
}

func (h *SeriesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.POST("/", h.Create)
	rg.GET("/:series_id", h.Get)
	rg.POST("/:series_id/seasons", h.AddSeason)
}

func (h *SeriesHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	list, err := h.svc.ListAll(ctx)
	if err != nil {
		respondError(c, h.opts.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSeriesList(list))
}

func (h *SeriesHandler) Create(c *gin.Context) {
	var in dto.CreateSeriesRequest
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	s, err := h.svc.Create(ctx, in.ToFields())
	if err != nil {
		respondError(c, h.opts.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromSeries(*s))
}

func (h *SeriesHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "series_id", "series")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	s, err := h.svc.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.opts.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSeriesDetail(*s))
}

// AddSeason answers with the whole series, seasons included.
func (h *SeriesHandler) AddSeason(c *gin.Context) {
	id, ok := parseID(c, "series_id", "series")
	if !ok {
		return
	}
	var in dto.AddSeasonRequest
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	if _, err := h.svc.AddSeason(ctx, id, in.ToFields()); err != nil {
		respondError(c, h.opts.Logger, err)
		return
	}
	s, err := h.svc.GetByID(ctx, id)
	if err != nil {
		respondError(c, h.opts.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromSeriesDetail(*s))
}
