package handlers

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devranvijay/PropertyPro/internal/api/middleware"
	"github.com/devranvijay/PropertyPro/internal/models"
	"github.com/devranvijay/PropertyPro/internal/services"
)

// VisitHandler handles viewing appointments.
type VisitHandler struct {
	visitService services.IVisitService
}

// NewVisitHandler creates a new VisitHandler.
func NewVisitHandler(visitService services.IVisitService) *VisitHandler {
	return &VisitHandler{visitService: visitService}
}

type createVisitRequest struct {
	PropertyID   string `json:"propertyId"`
	VisitorPhone string `json:"visitorPhone"`
	VisitDate    string `json:"visitDate"`
	VisitTime    string `json:"visitTime"`
}

func (r createVisitRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PropertyID, validation.Required),
		validation.Field(&r.VisitDate, validation.Required),
		validation.Field(&r.VisitTime, validation.Required),
	)
}

// Create handles POST /api/visits
func (h *VisitHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	visit, err := h.visitService.Create(c.Request.Context(), user, services.VisitRequest{
		PropertyID: propertyID,
		Phone:      req.VisitorPhone,
		VisitDate:  req.VisitDate,
		VisitTime:  req.VisitTime,
	})
	if err != nil {
		abortSubmissionError(c, err, "Property not found")
		return
	}
	c.JSON(http.StatusCreated, visit)
}

// My handles GET /api/visits/my
func (h *VisitHandler) My(c *gin.Context) {
	user := middleware.CurrentUser(c)

	visits, err := h.visitService.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list visits"})
		return
	}
	c.JSON(http.StatusOK, visits)
}

// Incoming handles GET /api/visits/incoming
func (h *VisitHandler) Incoming(c *gin.Context) {
	user := middleware.CurrentUser(c)

	visits, err := h.visitService.ListIncoming(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list visits"})
		return
	}
	c.JSON(http.StatusOK, visits)
}

// All handles GET /api/visits/admin/all
func (h *VisitHandler) All(c *gin.Context) {
	visits, err := h.visitService.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list visits"})
		return
	}
	c.JSON(http.StatusOK, visits)
}

type updateVisitStatusRequest struct {
	Status     string `json:"status"`
	SellerNote string `json:"sellerNote"`
}

func (r updateVisitStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required,
			validation.In("pending", "confirmed", "cancelled", "completed")),
	)
}

// UpdateStatus handles PUT /api/visits/:id/status
func (h *VisitHandler) UpdateStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req updateVisitStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visit, err := h.visitService.UpdateStatus(c.Request.Context(), id, user,
		models.VisitStatus(req.Status), req.SellerNote)
	if err != nil {
		abortSubmissionError(c, err, "Visit not found")
		return
	}
	c.JSON(http.StatusOK, visit)
}
