package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"watchlog/internal/microservices/http-api/dto"
	"watchlog/internal/microservices/http-api/service"
)

const defaultTimeout = 5 * time.Second

// Options are shared by every handler.
type Options struct {
	Logger  *zap.Logger
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return o
}

// parseID reads an integer path parameter. On failure it answers 400 and
// returns false.
func parseID(c *gin.Context, param, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "invalid " + name + " id"})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body into v. An empty body leaves v untouched.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "invalid JSON body"})
		return false
	}
	return true
}

// respondError maps service errors to status codes. Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var svcErr *service.Error
	switch {
	case errors.Is(err, service.ErrNotFound) && errors.As(err, &svcErr):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: svcErr.Msg})
	case errors.Is(err, service.ErrValidation) && errors.As(err, &svcErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: svcErr.Msg})
	default:
		_ = c.Error(err)
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "internal server error"})
	}
}
