package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"contacts_api/internal/apperr"
	"contacts_api/internal/service"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"s3cr3t"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"s3cr3t"`
}

// bindJSONOrError decodes the request body into dst. An empty body leaves dst
// zero so the service reports the missing fields; malformed JSON is pushed as
// a validation error. Returns false if the request was already handled.
func (h *Handler) bindJSONOrError(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		// optional structured logging
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		_ = c.Error(apperr.Wrap(apperr.KindValidation, msgInvalidBody, err))
		return false
	}
	return true
}

// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input  body      RegisterRequest  true  "new account"
// @Success      201    {object}  models.PublicUser
// @Failure      400    {object}  apperr.Envelope
// @Failure      500    {object}  apperr.Envelope
// @Router       /api/users/register [post]
func (h *Handler) registerUser(c *gin.Context) {
	var input RegisterRequest
	if ok := h.bindJSONOrError(c, &input); !ok {
		return
	}

	user, err := h.services.Authorization.Register(c.Request.Context(), service.RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// @Summary      Log in
// @Description  Returns the public identity and a bearer token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input  body      LoginRequest  true  "credentials"
// @Success      200    {object}  service.LoginResult
// @Failure      400    {object}  apperr.Envelope
// @Failure      401    {object}  apperr.Envelope
// @Failure      500    {object}  apperr.Envelope
// @Router       /api/users/login [post]
func (h *Handler) loginUser(c *gin.Context) {
	var input LoginRequest
	if ok := h.bindJSONOrError(c, &input); !ok {
		return
	}

	res, err := h.services.Authorization.Login(c.Request.Context(), service.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  models.PublicUser
// @Failure      401  {object}  apperr.Envelope
// @Router       /api/users/current [get]
// @Security     BearerAuth
func (h *Handler) currentUser(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		_ = c.Error(apperr.Unauthorized(errMissingAuthHeader))
		return
	}
	c.JSON(http.StatusOK, h.services.Authorization.CurrentUser(identity))
}
