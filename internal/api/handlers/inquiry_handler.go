package handlers

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devranvijay/PropertyPro/internal/api/middleware"
	"github.com/devranvijay/PropertyPro/internal/services"
)

// InquiryHandler handles property inquiries.
type InquiryHandler struct {
	inquiryService services.IInquiryService
}

// NewInquiryHandler creates a new InquiryHandler.
func NewInquiryHandler(inquiryService services.IInquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

type createInquiryRequest struct {
	PropertyID  string `json:"propertyId"`
	Message     string `json:"message"`
	SenderPhone string `json:"senderPhone"`
}

func (r createInquiryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PropertyID, validation.Required),
		validation.Field(&r.Message, validation.Required, validation.Length(1, 5000)),
	)
}

// Create handles POST /api/inquiries
func (h *InquiryHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createInquiryRequest
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

	inquiry, err := h.inquiryService.Create(c.Request.Context(), user, propertyID, req.Message, req.SenderPhone)
	if err != nil {
		abortSubmissionError(c, err, "Property not found")
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

// Sent handles GET /api/inquiries/sent
func (h *InquiryHandler) Sent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	inquiries, err := h.inquiryService.ListSent(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list inquiries"})
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

// Received handles GET /api/inquiries/received
func (h *InquiryHandler) Received(c *gin.Context) {
	user := middleware.CurrentUser(c)

	inquiries, err := h.inquiryService.ListReceived(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list inquiries"})
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

// All handles GET /api/inquiries/admin/all
func (h *InquiryHandler) All(c *gin.Context) {
	inquiries, err := h.inquiryService.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list inquiries"})
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

// MarkRead handles PUT /api/inquiries/:id/read
func (h *InquiryHandler) MarkRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	inquiry, err := h.inquiryService.MarkRead(c.Request.Context(), id, user)
	if err != nil {
		abortSubmissionError(c, err, "Inquiry not found")
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

type replyRequest struct {
	Reply string `json:"reply"`
}

func (r replyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reply, validation.Required, validation.Length(1, 5000)),
	)
}

// Reply handles PUT /api/inquiries/:id/reply
func (h *InquiryHandler) Reply(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquiry, err := h.inquiryService.Reply(c.Request.Context(), id, user, req.Reply)
	if err != nil {
		abortSubmissionError(c, err, "Inquiry not found")
		return
	}
	c.JSON(http.StatusOK, inquiry)
}
