package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/pagegrab/cache"
	"github.com/use-agent/pagegrab/models"
)

// Capturer runs one capture per request. The concrete implementation lives
// in the capture package; tests substitute a mock.
type Capturer interface {
	Do(ctx context.Context, req *models.CaptureRequest) (*models.PageInfo, error)
}

// Capture returns a handler for POST /api/v1/capture.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Cache lookup when max_age is set.
//  3. Capturer.Do → PageInfo.
//  4. Cache store, respond 200 with the PageInfo.
//
// Configuration errors (missing URL, conflicting modes, unsupported engine)
// come back as 400 before any browser interaction.
func Capture(cp Capturer, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CaptureRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()

		if verr := req.Validate(); verr != nil {
			respondError(c, verr)
			return
		}

		var key string
		if cc != nil && req.MaxAge > 0 {
			key = cache.Key(&req)
			if cached, hit := cc.Get(key, req.MaxAge); hit {
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		info, err := cp.Do(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		if cc != nil && req.MaxAge > 0 {
			cc.Set(key, info)
		}

		c.JSON(http.StatusOK, info)
	}
}

// respondError maps a CaptureError to the correct HTTP status code and
// writes a structured JSON error response.
func respondError(c *gin.Context, err error) {
	capErr, ok := err.(*models.CaptureError)
	if !ok {
		capErr = models.NewCaptureError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(capErr), models.ErrorResponse{
		Success: false,
		Error:   capErr.ToDetail(),
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.CaptureError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput, models.ErrCodeUnsupportedEngine:
		return http.StatusBadRequest // 400
	case models.ErrCodeNavigation:
		return http.StatusBadGateway // 502
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
