package handlers

import (
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devranvijay/PropertyPro/internal/storage"
	"github.com/devranvijay/PropertyPro/internal/tasks"
)

const maxUploadFiles = 10

// UploadHandler handles listing image uploads.
type UploadHandler struct {
	storage     storage.ILocalStorage
	asynqClient IAsynqClient // nil when no background worker is running
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(storage storage.ILocalStorage, asynqClient IAsynqClient) *UploadHandler {
	return &UploadHandler{storage: storage, asynqClient: asynqClient}
}

// Upload handles POST /api/upload. Accepts up to 10 images in the
// "images" multipart field, saves them to disk and queues each for
// background normalization. The response carries the public URLs in
// upload order.
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No images provided"})
		return
	}
	if len(files) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many files"})
		return
	}

	imageUrls, err := saveImages(c, h.storage, h.asynqClient, files)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Images uploaded successfully",
		"imageUrls": imageUrls,
	})
}

// saveImages stores each file to disk and queues it for background
// normalization. Enqueue failures are logged only; the original upload is
// already served as-is and losing the normalization pass is not worth
// failing the request.
func saveImages(c *gin.Context, store storage.ILocalStorage, client IAsynqClient, files []*multipart.FileHeader) ([]string, error) {
	imageUrls := make([]string, 0, len(files))
	for _, file := range files {
		url, diskPath, err := store.SaveImage(file)
		if err != nil {
			return nil, err
		}
		imageUrls = append(imageUrls, url)

		if client == nil {
			continue
		}
		task, err := tasks.NewImageProcessTask(diskPath)
		if err == nil {
			_, err = client.EnqueueContext(c.Request.Context(), task)
		}
		if err != nil {
			log.Printf("Failed to enqueue image processing for %s: %v", diskPath, err)
		}
	}
	return imageUrls, nil
}
