package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"watchlog/internal/microservices/http-api/dto"
	"watchlog/internal/microservices/http-api/service"
)

type MovieHandler struct {
	svc  service.MovieService
	opts Options
}

func NewMovieHandler(svc service.MovieService, opts Options) *MovieHandler {
	return &MovieHandler{svc: svc, opts: opts.withDefaults()}
}

func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.POST("/", h.Create)
	rg.GET("/:movie_id", h.Get)
	rg.PATCH("/:movie_id", h.Update)
	rg.DELETE("/:movie_id", h.Delete)
}

func (h *MovieHandler) log() *zap.Logger { return h.opts.Logger }

func (h *MovieHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	list, err := h.svc.ListAll(ctx)
	if err != nil {
		respondError(c, h.log(), err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMovies(list))
}

func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "movie_id", "movie")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	m, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, h.log(), err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMovie(*m))
}

func (h *MovieHandler) Create(c *gin.Context) {
	var in dto.MovieRequest
	if !bindJSON(c, &in) {
		return
	}
	if !in.Title.HasValue() || in.Title.Value == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "field 'title' is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	m, err := h.svc.Create(ctx, in.ToFields())
	if err != nil {
		respondError(c, h.log(), err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromMovie(*m))
}

func (h *MovieHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "movie_id", "movie")
	if !ok {
		return
	}
	var in dto.MovieRequest
	if !bindJSON(c, &in) {
		return
	}
	if in.Title.Set && (in.Title.Null || in.Title.Value == "") {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "field 'title' cannot be empty"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	m, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, h.log(), err)
		return
	}
	updated, err := h.svc.Update(ctx, m, in.ToFields())
	if err != nil {
		respondError(c, h.log(), err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMovie(*updated))
}

func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "movie_id", "movie")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opts.Timeout)
	defer cancel()

	m, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, h.log(), err)
		return
	}
	if err := h.svc.Delete(ctx, m); err != nil {
		respondError(c, h.log(), err)
		return
	}
	c.Status(http.StatusNoContent)
}
