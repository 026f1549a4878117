package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devranvijay/PropertyPro/internal/api/middleware"
	"github.com/devranvijay/PropertyPro/internal/models"
	"github.com/devranvijay/PropertyPro/internal/services"
	"github.com/devranvijay/PropertyPro/internal/storage"
)

// Listings accept at most this many attached images on creation; larger
// galleries go through POST /api/upload first.
const maxListingImages = 5

// PropertyHandler handles listing CRUD and filtering.
type PropertyHandler struct {
	propertyService services.IPropertyService
	storage         storage.ILocalStorage
	asynqClient     IAsynqClient // nil when no background worker is running
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService services.IPropertyService, storage storage.ILocalStorage, asynqClient IAsynqClient) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService, storage: storage, asynqClient: asynqClient}
}

// parseFilter reads the optional listing filters from query parameters.
// Unparseable numeric values are rejected rather than ignored.
func parseFilter(c *gin.Context) (services.PropertyFilter, error) {
	filter := services.PropertyFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
	}

	if v := c.Query("minPrice"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("invalid minPrice")
		}
		filter.MinPrice = &n
	}
	if v := c.Query("maxPrice"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("invalid maxPrice")
		}
		filter.MaxPrice = &n
	}

	// type accepts a comma-separated list; unknown values are rejected.
	if v := c.Query("type"); v != "" {
		for _, raw := range strings.Split(v, ",") {
			pt := models.PropertyType(strings.TrimSpace(raw))
			if !pt.Valid() {
				return filter, errors.New("invalid property type: " + string(pt))
			}
			filter.Types = append(filter.Types, pt)
		}
	}

	return filter, nil
}

// List handles GET /api/properties
func (h *PropertyHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	properties, err := h.propertyService.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetByID handles GET /api/properties/:id
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	property, err := h.propertyService.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve property"})
		return
	}
	c.JSON(http.StatusOK, property)
}

// TrackView handles PUT /api/properties/:id/view
func (h *PropertyHandler) TrackView(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	views, err := h.propertyService.IncrementViews(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track view"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"views": views})
}

type createPropertyRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
}

func (r createPropertyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Price, validation.Required, validation.Min(1)),
		validation.Field(&r.Location, validation.Required),
		validation.Field(&r.Type, validation.Required, validation.In("buy", "rent", "commercial")),
	)
}

// bindCreateRequest reads the listing fields from either a JSON body or a
// multipart form with attached image files. Multipart images are stored
// immediately and their public URLs appended to the request.
func (h *PropertyHandler) bindCreateRequest(c *gin.Context) (createPropertyRequest, bool) {
	var req createPropertyRequest

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return req, false
		}
		return req, true
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return req, false
	}

	req.Title = c.PostForm("title")
	req.Description = c.PostForm("description")
	req.Location = c.PostForm("location")
	req.Type = c.PostForm("type")
	req.Amenities = c.PostFormArray("amenities")
	if v := c.PostForm("price"); v != "" {
		req.Price, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return req, false
		}
	}

	files := form.File["images"]
	if len(files) > maxListingImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many images"})
		return req, false
	}
	if len(files) > 0 {
		req.Images, err = saveImages(c, h.storage, h.asynqClient, files)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return req, false
		}
	}
	return req, true
}

// Create handles POST /api/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	req, ok := h.bindCreateRequest(c)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property := &models.Property{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Type:        models.PropertyType(req.Type),
		Images:      req.Images,
		Amenities:   req.Amenities,
		Owner:       user.ID,
	}

	created, err := h.propertyService.Create(c.Request.Context(), property)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// My handles GET /api/properties/my
func (h *PropertyHandler) My(c *gin.Context) {
	user := middleware.CurrentUser(c)

	properties, err := h.propertyService.FindByOwner(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}
