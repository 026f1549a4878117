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

// OfferHandler handles purchase offers.
type OfferHandler struct {
	offerService services.IOfferService
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(offerService services.IOfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

type createOfferRequest struct {
	PropertyID  string `json:"propertyId"`
	OfferAmount int64  `json:"offerAmount"`
	Note        string `json:"note"`
	BuyerPhone  string `json:"buyerPhone"`
}

func (r createOfferRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PropertyID, validation.Required),
		validation.Field(&r.OfferAmount, validation.Required, validation.Min(1)),
	)
}

// Create handles POST /api/offers
func (h *OfferHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createOfferRequest
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

	offer, err := h.offerService.Create(c.Request.Context(), user, propertyID, req.OfferAmount, req.Note, req.BuyerPhone)
	if err != nil {
		abortSubmissionError(c, err, "Property not found")
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// My handles GET /api/offers/my
func (h *OfferHandler) My(c *gin.Context) {
	user := middleware.CurrentUser(c)

	offers, err := h.offerService.ListByBuyer(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list offers"})
		return
	}
	c.JSON(http.StatusOK, offers)
}

// Received handles GET /api/offers/received
func (h *OfferHandler) Received(c *gin.Context) {
	user := middleware.CurrentUser(c)

	offers, err := h.offerService.ListReceived(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list offers"})
		return
	}
	c.JSON(http.StatusOK, offers)
}

// All handles GET /api/offers/admin/all
func (h *OfferHandler) All(c *gin.Context) {
	offers, err := h.offerService.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list offers"})
		return
	}
	c.JSON(http.StatusOK, offers)
}

type updateOfferStatusRequest struct {
	Status        string `json:"status"`
	CounterAmount *int64 `json:"counterAmount"`
	SellerNote    string `json:"sellerNote"`
}

func (r updateOfferStatusRequest) Validate() error {
	// Offers never go back to pending; re-deciding an already decided
	// offer is allowed.
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required,
			validation.In("accepted", "rejected", "countered")),
		validation.Field(&r.CounterAmount, validation.Min(int64(1))),
	)
}

// UpdateStatus handles PUT /api/offers/:id/status
func (h *OfferHandler) UpdateStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req updateOfferStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.offerService.UpdateStatus(c.Request.Context(), id, user,
		models.OfferStatus(req.Status), req.CounterAmount, req.SellerNote)
	if err != nil {
		abortSubmissionError(c, err, "Offer not found")
		return
	}
	c.JSON(http.StatusOK, offer)
}
