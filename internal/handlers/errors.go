package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"contacts_api/internal/apperr"
)

const (
	msgRouteNotFound  = "Route not found"
	msgInvalidBody    = "Invalid request body"
	msgInternalServer = "Internal server error"
)

// errorMiddleware is the single place where a failed request becomes a
// response: handlers push errors with c.Error and return.
func (h *Handler) errorMiddleware(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	env, code := apperr.Map(err, apperr.StatusOf(err), !h.opts.HideStackTrace)

	if h.log != nil {
		fields := []interface{}{
			"err", err,
			"status", code,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
		}
		if code >= 500 {
			h.log.Errorw("request_failed", fields...)
		} else {
			h.log.Infow("request_rejected", fields...)
		}
	}

	c.AbortWithStatusJSON(code, env)
}

// recoverPanic turns a recovered panic into a server error for errorMiddleware.
func (h *Handler) recoverPanic(c *gin.Context, recovered any) {
	_ = c.Error(apperr.Server(msgInternalServer, fmt.Errorf("panic: %v", recovered)))
	c.Abort()
}

func (h *Handler) notFound(c *gin.Context) {
	_ = c.Error(apperr.NotFound(msgRouteNotFound))
}
