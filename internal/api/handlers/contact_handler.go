package handlers

import (
	"fmt"
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devranvijay/PropertyPro/internal/api/middleware"
	"github.com/devranvijay/PropertyPro/internal/services"
	"github.com/devranvijay/PropertyPro/internal/tasks"
)

// ContactHandler handles the public contact form.
type ContactHandler struct {
	contactService services.IContactService
	asynqClient    IAsynqClient // nil when no background worker is running
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService services.IContactService, asynqClient IAsynqClient) *ContactHandler {
	return &ContactHandler{contactService: contactService, asynqClient: asynqClient}
}

type contactRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	PropertyID string `json:"propertyId"`
}

func (r contactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Phone, validation.Required, validation.Length(1, 40)),
		validation.Field(&r.Message, validation.Required, validation.Length(1, 5000)),
	)
}

// Submit handles POST /api/contact. The message is persisted first; the
// email notification is queued afterwards and its failure never fails
// the request.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serviceReq := services.ContactRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if req.PropertyID != "" {
		propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
			return
		}
		serviceReq.PropertyID = &propertyID
	}

	contact, notifyTo, err := h.contactService.Submit(c.Request.Context(), serviceReq)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
		return
	}

	h.enqueueNotification(c, notifyTo, contact.Name, contact.Email, contact.Phone, contact.Message)

	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) enqueueNotification(c *gin.Context, recipient, name, email, phone, message string) {
	if h.asynqClient == nil || recipient == "" {
		return
	}

	body := fmt.Sprintf("New contact message from %s <%s> (%s):\r\n\r\n%s", name, email, phone, message)
	task, err := tasks.NewEmailDeliveryTask(recipient, "Contact form message from "+name, body)
	if err == nil {
		_, err = h.asynqClient.EnqueueContext(c.Request.Context(), task)
	}
	if err != nil {
		log.Printf("Failed to enqueue contact notification to %s: %v", recipient, err)
	}
}

// My handles GET /api/contact/my: messages addressed to the
// authenticated user.
func (h *ContactHandler) My(c *gin.Context) {
	user := middleware.CurrentUser(c)

	contacts, err := h.contactService.ListForRecipient(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, contacts)
}
