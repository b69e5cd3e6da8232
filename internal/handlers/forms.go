package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"event-registration-backend/internal/models"
	"event-registration-backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// FormHandler handles event form CRUD and publishing
type FormHandler struct {
	forms *repositories.FormRepository
}

// NewFormHandler creates a new form handler
func NewFormHandler(forms *repositories.FormRepository) *FormHandler {
	return &FormHandler{forms: forms}
}

// Create handles POST /api/admin/forms
func (h *FormHandler) Create(c *gin.Context) {
	var req models.EventFormCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	form, err := h.forms.Create(&req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create form"})
		return
	}

	c.JSON(http.StatusCreated, form)
}

// Get handles GET /api/admin/forms/:id
func (h *FormHandler) Get(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}

	form, err := h.forms.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get form"})
		return
	}
	if form == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		return
	}

	c.JSON(http.StatusOK, form)
}

// List handles GET /api/admin/forms
func (h *FormHandler) List(c *gin.Context) {
	forms, err := h.forms.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list forms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"forms": forms})
}

// Update handles PUT /api/admin/forms/:id
func (h *FormHandler) Update(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}

	var req models.EventFormUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.forms.Update(id, &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update form"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		return
	}

	form, err := h.forms.GetByID(id)
	if err != nil || form == nil {
		c.JSON(http.StatusOK, gin.H{"updated": true})
		return
	}

	c.JSON(http.StatusOK, form)
}

// Delete handles DELETE /api/admin/forms/:id
func (h *FormHandler) Delete(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}

	deleted, err := h.forms.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete form"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Publish handles POST /api/admin/forms/:id/publish. Any other published form
// is unpublished in the same transaction.
func (h *FormHandler) Publish(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}

	published, err := h.forms.Publish(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish form"})
		return
	}
	if !published {
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"published": true})
}

// Unpublish handles POST /api/admin/forms/:id/unpublish
func (h *FormHandler) Unpublish(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}

	unpublished, err := h.forms.Unpublish(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unpublish form"})
		return
	}
	if !unpublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "form not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"published": false})
}

// Published handles GET /api/forms/published, the public lookup of the form
// currently accepting registrations
func (h *FormHandler) Published(c *gin.Context) {
	form, err := h.forms.GetPublished()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get published form"})
		return
	}
	if form == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no published form"})
		return
	}

	c.JSON(http.StatusOK, form)
}

func formID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form id"})
		return 0, false
	}
	return id, true
}
