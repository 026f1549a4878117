package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/devranvijay/PropertyPro/internal/config"
)

// allowedImageExts is the set of image extensions accepted for listing
// photos.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ILocalStorage defines the interface for disk-backed image storage.
type ILocalStorage interface {
	SaveImage(file *multipart.FileHeader) (url string, diskPath string, err error)
}

type localStorage struct {
	cfg *config.Config
}

// NewLocalStorage creates the upload directory if needed and returns the
// storage service.
func NewLocalStorage(cfg *config.Config) (ILocalStorage, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory '%s': %w", cfg.UploadDir, err)
	}
	return &localStorage{cfg: cfg}, nil
}

// SaveImage writes an uploaded file to the upload directory under a
// random name and returns the public URL path plus the on-disk path.
// The original filename only contributes its extension; everything else
// is discarded so client input never reaches the filesystem.
func (s *localStorage) SaveImage(file *multipart.FileHeader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", "", fmt.Errorf("unsupported image type %q", ext)
	}

	name := uuid.NewString() + ext
	diskPath := filepath.Join(s.cfg.UploadDir, name)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(diskPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file '%s': %w", diskPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(diskPath)
		return "", "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	return path.Join(s.cfg.UploadBaseURL, name), diskPath, nil
}
