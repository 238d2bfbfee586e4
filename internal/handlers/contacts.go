package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contacts_api/internal/models"
	"contacts_api/internal/service"
)

// ContactRequest is the payload for creating a contact. For updates every
// field is optional and only the supplied ones change.
type ContactRequest struct {
	Name  string `json:"name" example:"Jane Doe"`
	Email string `json:"email" example:"jane@example.com"`
	Phone string `json:"phone" example:"+1-555-0100"`
}

// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Success      200  {array}   models.Contact
// @Failure      500  {object}  apperr.Envelope
// @Router       /api/contacts [get]
func (h *Handler) listContacts(c *gin.Context) {
	out, err := h.services.Contacts.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if out == nil {
		out = []models.Contact{}
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Create contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        input  body      ContactRequest  true  "contact"
// @Success      201    {object}  models.Contact
// @Failure      400    {object}  apperr.Envelope
// @Failure      500    {object}  apperr.Envelope
// @Router       /api/contacts [post]
func (h *Handler) createContact(c *gin.Context) {
	var input ContactRequest
	if ok := h.bindJSONOrError(c, &input); !ok {
		return
	}

	contact, err := h.services.Contacts.Create(c.Request.Context(), service.ContactInput{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// @Summary      Get contact
// @Tags         contacts
// @Produce      json
// @Param        id   path      string  true  "contact id"
// @Success      200  {object}  models.Contact
// @Failure      404  {object}  apperr.Envelope
// @Router       /api/contacts/{id} [get]
func (h *Handler) getContact(c *gin.Context) {
	contact, err := h.services.Contacts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// @Summary      Update contact
// @Description  Merges the supplied fields; omitted fields keep their value.
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id     path      string          true  "contact id"
// @Param        input  body      ContactRequest  true  "fields to change"
// @Success      200    {object}  models.Contact
// @Failure      400    {object}  apperr.Envelope
// @Failure      404    {object}  apperr.Envelope
// @Router       /api/contacts/{id} [put]
// @Router       /api/contacts/{id} [patch]
func (h *Handler) updateContact(c *gin.Context) {
	var patch models.ContactPatch
	if ok := h.bindJSONOrError(c, &patch); !ok {
		return
	}

	contact, err := h.services.Contacts.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// @Summary      Delete contact
// @Description  Returns the record as it was before removal.
// @Tags         contacts
// @Produce      json
// @Param        id   path      string  true  "contact id"
// @Success      200  {object}  models.Contact
// @Failure      404  {object}  apperr.Envelope
// @Router       /api/contacts/{id} [delete]
func (h *Handler) deleteContact(c *gin.Context) {
	contact, err := h.services.Contacts.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contact)
}
