package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Maximum upload size in MB.
const maxUploadSizeMB = 20

// isMultipart reports whether the request carries form-data instead
// of JSON (create endpoints accept both).
func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// saveUploadedImage stores the "image" form file under the configured
// upload directory with a uuid filename and returns the stored name.
// Returns "" (no error) when the form simply has no file.
func (h *Handlers) saveUploadedImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil // no file attached
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.New("Only image files are allowed")
	}
	if file.Size > maxUploadSizeMB*1024*1024 {
		return "", fmt.Errorf("File size exceeds the maximum limit of %d MB", maxUploadSizeMB)
	}

	if _, err := os.Stat(h.Config.UploadDir); os.IsNotExist(err) {
		os.MkdirAll(h.Config.UploadDir, 0755)
	}

	ext := filepath.Ext(file.Filename)
	newFilename := uuid.New().String() + ext
	savePath := filepath.Join(h.Config.UploadDir, newFilename)

	if err := c.SaveUploadedFile(file, savePath); err != nil {
		return "", err
	}
	return newFilename, nil
}

// UploadImage is the handler for POST /api/upload (Login Required)
// It saves the image and returns the public URL.
func (h *Handlers) UploadImage(c *gin.Context) {
	if _, err := c.FormFile("image"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file uploaded"})
		return
	}

	filename, err := h.saveUploadedImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if filename == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     fmt.Sprintf("%s/images/%s", h.Config.BaseURL, filename),
	})
}
