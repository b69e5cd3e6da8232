package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"event-registration-backend/internal/models"
	"event-registration-backend/internal/repositories"
	"event-registration-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// RegistrationHandler handles registration, QR and scan endpoints
type RegistrationHandler struct {
	tickets *services.TicketService
	forms   *repositories.FormRepository
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(tickets *services.TicketService, forms *repositories.FormRepository) *RegistrationHandler {
	return &RegistrationHandler{tickets: tickets, forms: forms}
}

type publicRegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
	GroupSize    int    `json:"group_size"`
}

// Register handles POST /api/register, the public registration against the
// currently published form. Group tickets get one scan per group member.
func (h *RegistrationHandler) Register(c *gin.Context) {
	form, err := h.forms.GetPublished()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up published form"})
		return
	}
	if form == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "registration is not open"})
		return
	}

	var req publicRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.GroupSize == 0 {
		req.GroupSize = 1
	}

	registration, err := h.tickets.CreateRegistration(&models.RegistrationCreateRequest{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Organization: req.Organization,
		GroupSize:    req.GroupSize,
		FormID:       &form.ID,
		MaxScans:     req.GroupSize,
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, registration)
}

// Create handles POST /api/admin/registrations for manual admin entry
func (h *RegistrationHandler) Create(c *gin.Context) {
	var req models.RegistrationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.GroupSize == 0 {
		req.GroupSize = 1
	}
	if req.MaxScans == 0 {
		req.MaxScans = req.GroupSize
	}

	registration, err := h.tickets.CreateRegistration(&req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create registration"})
		return
	}

	c.JSON(http.StatusCreated, registration)
}

// List handles GET /api/admin/registrations. With ?form_id= it scopes to a
// form, legacy registrations included.
func (h *RegistrationHandler) List(c *gin.Context) {
	var (
		registrations []*models.Registration
		err           error
	)

	if raw := c.Query("form_id"); raw != "" {
		formID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form_id"})
			return
		}
		registrations, err = h.tickets.ListRegistrationsByForm(formID)
	} else {
		registrations, err = h.tickets.ListRegistrations()
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": registrations})
}

// Get handles GET /api/admin/registrations/:id
func (h *RegistrationHandler) Get(c *gin.Context) {
	registration, err := h.tickets.GetRegistration(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get registration"})
		return
	}
	if registration == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
		return
	}

	c.JSON(http.StatusOK, registration)
}

// Delete handles DELETE /api/admin/registrations/:id
func (h *RegistrationHandler) Delete(c *gin.Context) {
	deleted, err := h.tickets.DeleteRegistration(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete registration"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GenerateQR handles POST /api/admin/registrations/:id/qr. Issuing twice is a
// no-op that reports the code was already bound.
func (h *RegistrationHandler) GenerateQR(c *gin.Context) {
	id := c.Param("id")

	payload, generated, err := h.tickets.GenerateQRCode(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
		return
	}

	if !generated {
		registration, err := h.tickets.GetRegistration(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
			return
		}
		if registration == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"generated": false, "message": "QR code already issued"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"generated": true, "qr_code_data": payload})
}

// QRImage handles GET /api/admin/registrations/:id/qr.jpeg
func (h *RegistrationHandler) QRImage(c *gin.Context) {
	image, err := h.tickets.QRCodeImage(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render QR code"})
		return
	}
	if image == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no QR code issued"})
		return
	}

	c.Data(http.StatusOK, "image/jpeg", image)
}

// Revoke handles POST /api/admin/registrations/:id/revoke
func (h *RegistrationHandler) Revoke(c *gin.Context) {
	revoked, err := h.tickets.RevokeQRCode(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke ticket"})
		return
	}
	if !revoked {
		c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"revoked": true})
}

type scanRequest struct {
	Code     string `json:"code"`
	TicketID string `json:"ticket_id"`
}

// Scan handles POST /api/admin/scan. Policy refusals (revoked, limit reached,
// unknown ticket) are regular 200 responses with valid=false; they are
// expected outcomes at the door, not transport errors.
func (h *RegistrationHandler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var (
		result *models.ScanResult
		err    error
	)

	switch {
	case req.Code != "":
		result, err = h.tickets.VerifyAndScan(req.Code)
	case req.TicketID != "":
		result, err = h.tickets.VerifyAndScanID(req.TicketID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "code or ticket_id is required"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process scan"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Stats handles GET /api/admin/stats
func (h *RegistrationHandler) Stats(c *gin.Context) {
	stats, err := h.tickets.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// FormStats handles GET /api/admin/forms/:id/stats
func (h *RegistrationHandler) FormStats(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}

	stats, err := h.tickets.FormStats(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
