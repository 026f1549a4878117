package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devranvijay/PropertyPro/internal/api/handlers"
	"github.com/devranvijay/PropertyPro/internal/config"
	"github.com/devranvijay/PropertyPro/internal/models"
	"github.com/devranvijay/PropertyPro/internal/services"
)

func setupAuthTestRouter(userService *MockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JwtSecret: "test-secret", JwtTTL: time.Hour}
	h := handlers.NewAuthHandler(userService, cfg)
	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	return doJSON(t, r, http.MethodPost, path, body)
}

func putJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	return doJSON(t, r, http.MethodPut, path, body)
}

func TestRegister_Success(t *testing.T) {
	mockUsers := new(MockUserService)
	user := &models.User{ID: primitive.NewObjectID(), Name: "Alice", Email: "alice@example.com", Role: models.RoleBuyer}
	mockUsers.On("Register", mock.Anything, "Alice", "alice@example.com", "password123", models.RoleBuyer).Return(user, nil)

	r := setupAuthTestRouter(mockUsers)
	w := postJSON(t, r, "/api/auth/register", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "password123", "role": "buyer",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID.Hex(), resp["_id"])
	assert.Equal(t, "Alice", resp["name"])
	assert.Equal(t, "buyer", resp["role"])
	assert.NotEmpty(t, resp["token"])
}

func TestRegister_ShortDomainEmail(t *testing.T) {
	// Addresses with a single-letter domain label are valid and must not
	// be rejected by the format check.
	mockUsers := new(MockUserService)
	user := &models.User{ID: primitive.NewObjectID(), Name: "Asha", Email: "asha@x.com", Role: models.RoleBuyer}
	mockUsers.On("Register", mock.Anything, "Asha", "asha@x.com", "password123", models.RoleBuyer).Return(user, nil)

	r := setupAuthTestRouter(mockUsers)
	w := postJSON(t, r, "/api/auth/register", gin.H{
		"name": "Asha", "email": "asha@x.com", "password": "password123", "role": "buyer",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUsers.AssertExpectations(t)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	mockUsers := new(MockUserService)
	r := setupAuthTestRouter(mockUsers)

	w := postJSON(t, r, "/api/auth/register", gin.H{
		"name": "Eve", "email": "eve@example.com", "password": "password123", "role": "admin",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUsers.AssertNotCalled(t, "Register")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	mockUsers := new(MockUserService)
	mockUsers.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, services.ErrEmailExists)

	r := setupAuthTestRouter(mockUsers)
	w := postJSON(t, r, "/api/auth/register", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "password123", "role": "buyer",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestLogin_Success(t *testing.T) {
	mockUsers := new(MockUserService)
	user := &models.User{ID: primitive.NewObjectID(), Name: "Alice", Email: "alice@example.com", Role: models.RoleSeller}
	mockUsers.On("Authenticate", mock.Anything, "alice@example.com", "password123").Return(user, nil)

	r := setupAuthTestRouter(mockUsers)
	w := postJSON(t, r, "/api/auth/login", gin.H{"email": "alice@example.com", "password": "password123"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "seller", resp["role"])
	assert.NotEmpty(t, resp["token"])
}

func TestLogin_BadCredentials(t *testing.T) {
	mockUsers := new(MockUserService)
	mockUsers.On("Authenticate", mock.Anything, "alice@example.com", "wrong").
		Return(nil, services.ErrInvalidCredentials)

	r := setupAuthTestRouter(mockUsers)
	w := postJSON(t, r, "/api/auth/login", gin.H{"email": "alice@example.com", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
