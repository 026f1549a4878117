package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devranvijay/PropertyPro/internal/api/handlers"
	"github.com/devranvijay/PropertyPro/internal/models"
	"github.com/devranvijay/PropertyPro/internal/services"
)

func setupPropertyTestRouter(propertyService *MockPropertyService, store *MockLocalStorage, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewPropertyHandler(propertyService, store, nil)
	r := gin.New()
	r.GET("/api/properties", h.List)
	r.GET("/api/properties/:id", h.GetByID)
	r.PUT("/api/properties/:id/view", h.TrackView)
	if user != nil {
		r.POST("/api/properties", asUser(user), h.Create)
		r.GET("/api/properties/my", asUser(user), h.My)
	}
	return r
}

func TestPropertyList_ParsesFilters(t *testing.T) {
	mockProperties := new(MockPropertyService)
	min, max := int64(1000), int64(5000)
	expected := services.PropertyFilter{
		Search:   "garden",
		MinPrice: &min,
		MaxPrice: &max,
		Types:    []models.PropertyType{models.PropertyTypeRent, models.PropertyTypeBuy},
		Location: "metropolis",
	}
	mockProperties.On("List", mock.Anything, expected).Return([]models.Property{}, nil)

	r := setupPropertyTestRouter(mockProperties, nil, nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet,
		"/api/properties?search=garden&minPrice=1000&maxPrice=5000&type=rent,buy&location=metropolis", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockProperties.AssertExpectations(t)
}

func TestPropertyList_RejectsBadFilter(t *testing.T) {
	r := setupPropertyTestRouter(new(MockPropertyService), nil, nil)

	for _, url := range []string{
		"/api/properties?minPrice=abc",
		"/api/properties?type=castle",
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, url, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
}

func TestPropertyGetByID_NotFound(t *testing.T) {
	mockProperties := new(MockPropertyService)
	id := primitive.NewObjectID()
	mockProperties.On("FindByID", mock.Anything, id).Return(nil, mongo.ErrNoDocuments)

	r := setupPropertyTestRouter(mockProperties, nil, nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/properties/"+id.Hex(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPropertyGetByID_BadID(t *testing.T) {
	r := setupPropertyTestRouter(new(MockPropertyService), nil, nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/properties/not-an-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPropertyTrackView(t *testing.T) {
	mockProperties := new(MockPropertyService)
	id := primitive.NewObjectID()
	mockProperties.On("IncrementViews", mock.Anything, id).Return(int64(42), nil)

	r := setupPropertyTestRouter(mockProperties, nil, nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/properties/"+id.Hex()+"/view", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp["views"])
}

func TestPropertyCreate_OwnerFromSession(t *testing.T) {
	seller := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSeller}
	mockProperties := new(MockPropertyService)
	mockProperties.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Property) bool {
		return p.Owner == seller.ID && p.Title == "Cottage" && p.Type == models.PropertyTypeBuy
	})).Return(&models.Property{ID: primitive.NewObjectID(), Title: "Cottage", Owner: seller.ID}, nil)

	r := setupPropertyTestRouter(mockProperties, nil, seller)
	w := postJSON(t, r, "/api/properties", gin.H{
		"title": "Cottage", "price": 100000, "location": "Smallville", "type": "buy",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	mockProperties.AssertExpectations(t)
}

func TestPropertyCreate_MultipartWithImages(t *testing.T) {
	seller := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSeller}

	mockStorage := new(MockLocalStorage)
	mockStorage.On("SaveImage", mock.Anything).Return("/uploads/a.jpg", "uploads/a.jpg", nil).Once()

	mockProperties := new(MockPropertyService)
	mockProperties.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Property) bool {
		return p.Owner == seller.ID && p.Price == 250000 &&
			len(p.Images) == 1 && p.Images[0] == "/uploads/a.jpg"
	})).Return(&models.Property{ID: primitive.NewObjectID(), Owner: seller.ID}, nil)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for field, value := range map[string]string{
		"title": "Farmhouse", "price": "250000", "location": "Hilltop", "type": "buy",
	} {
		require.NoError(t, writer.WriteField(field, value))
	}
	part, err := writer.CreateFormFile("images", "a.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	r := setupPropertyTestRouter(mockProperties, mockStorage, seller)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/properties", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockStorage.AssertExpectations(t)
	mockProperties.AssertExpectations(t)
}

func TestPropertyCreate_ValidationFailure(t *testing.T) {
	seller := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSeller}
	r := setupPropertyTestRouter(new(MockPropertyService), nil, seller)

	w := postJSON(t, r, "/api/properties", gin.H{
		"title": "", "price": 0, "location": "", "type": "castle",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
