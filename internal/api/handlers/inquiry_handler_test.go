package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devranvijay/PropertyPro/internal/api/handlers"
	"github.com/devranvijay/PropertyPro/internal/models"
	"github.com/devranvijay/PropertyPro/internal/services"
)

func setupInquiryTestRouter(inquiryService *MockInquiryService, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewInquiryHandler(inquiryService)
	r := gin.New()
	r.POST("/api/inquiries", asUser(user), h.Create)
	r.PUT("/api/inquiries/:id/read", asUser(user), h.MarkRead)
	r.PUT("/api/inquiries/:id/reply", asUser(user), h.Reply)
	return r
}

func TestInquiryCreate_Success(t *testing.T) {
	buyer := &models.User{ID: primitive.NewObjectID(), Name: "Curious Buyer", Role: models.RoleBuyer}
	propertyID := primitive.NewObjectID()

	mockInquiries := new(MockInquiryService)
	mockInquiries.On("Create", mock.Anything, buyer, propertyID, "Is the garage included?", "555-0102").
		Return(&models.Inquiry{ID: primitive.NewObjectID(), Status: models.InquiryStatusUnread}, nil)

	r := setupInquiryTestRouter(mockInquiries, buyer)
	w := postJSON(t, r, "/api/inquiries", gin.H{
		"propertyId":  propertyID.Hex(),
		"message":     "Is the garage included?",
		"senderPhone": "555-0102",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	mockInquiries.AssertExpectations(t)
}

func TestInquiryCreate_NoRecipient(t *testing.T) {
	buyer := &models.User{ID: primitive.NewObjectID(), Role: models.RoleBuyer}
	mockInquiries := new(MockInquiryService)
	mockInquiries.On("Create", mock.Anything, buyer, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, services.ErrNoRecipient)

	r := setupInquiryTestRouter(mockInquiries, buyer)
	w := postJSON(t, r, "/api/inquiries", gin.H{
		"propertyId": primitive.NewObjectID().Hex(),
		"message":    "Hello?",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInquiryMarkRead_NotRecipient(t *testing.T) {
	stranger := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSeller}
	inquiryID := primitive.NewObjectID()

	mockInquiries := new(MockInquiryService)
	mockInquiries.On("MarkRead", mock.Anything, inquiryID, stranger).
		Return(nil, services.ErrForbidden)

	r := setupInquiryTestRouter(mockInquiries, stranger)
	w := putJSON(t, r, "/api/inquiries/"+inquiryID.Hex()+"/read", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInquiryReply_Success(t *testing.T) {
	seller := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSeller}
	inquiryID := primitive.NewObjectID()

	mockInquiries := new(MockInquiryService)
	mockInquiries.On("Reply", mock.Anything, inquiryID, seller, "Yes, the garage is included.").
		Return(&models.Inquiry{ID: inquiryID, Status: models.InquiryStatusReplied}, nil)

	r := setupInquiryTestRouter(mockInquiries, seller)
	w := putJSON(t, r, "/api/inquiries/"+inquiryID.Hex()+"/reply", gin.H{
		"reply": "Yes, the garage is included.",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	mockInquiries.AssertExpectations(t)
}

func TestInquiryReply_EmptyReply(t *testing.T) {
	seller := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSeller}
	r := setupInquiryTestRouter(new(MockInquiryService), seller)

	w := putJSON(t, r, "/api/inquiries/"+primitive.NewObjectID().Hex()+"/reply", gin.H{"reply": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
