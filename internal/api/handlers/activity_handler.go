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

// ActivityHandler handles the interaction tracking log.
type ActivityHandler struct {
	activityService services.IActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService services.IActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

type logActivityRequest struct {
	PropertyID string `json:"propertyId"`
	Action     string `json:"action"`
}

func (r logActivityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PropertyID, validation.Required),
		validation.Field(&r.Action, validation.Required,
			validation.In("visit", "inquiry", "save")),
	)
}

// Log handles POST /api/activity/log
func (h *ActivityHandler) Log(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req logActivityRequest
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

	activity, err := h.activityService.Log(c.Request.Context(), user.ID, propertyID, models.ActivityAction(req.Action))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record activity"})
		return
	}
	c.JSON(http.StatusCreated, activity)
}

// Tracking handles GET /api/activity/admin/tracking
func (h *ActivityHandler) Tracking(c *gin.Context) {
	activities, err := h.activityService.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list activity"})
		return
	}
	c.JSON(http.StatusOK, activities)
}
