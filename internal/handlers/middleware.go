package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contacts_api/internal/apperr"
	"contacts_api/internal/models"
)

const (
	identityKey  = "identity"
	requestIDKey = "request_id"

	errMissingAuthHeader = "missing Authorization header"
	errAuthHeaderFormat  = "invalid Authorization header format"
	errInvalidToken      = "invalid or expired token"
)

// identityMiddleware resolves the bearer token into the request identity.
func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		abortWith(c, apperr.Unauthorized(errMissingAuthHeader))
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		abortWith(c, apperr.Unauthorized(errAuthHeaderFormat))
		return
	}

	identity, err := h.services.Authorization.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		abortWith(c, apperr.Wrap(apperr.KindAuth, errInvalidToken, err))
		return
	}

	// store in Gin context
	c.Set(identityKey, identity)
	c.Next()
}

// identityFrom returns the identity set by identityMiddleware.
func identityFrom(c *gin.Context) (models.PublicUser, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.PublicUser{}, false
	}
	id, ok := v.(models.PublicUser)
	return id, ok
}

// requestID tags every request with a unique id, echoed in X-Request-ID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
