package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"rentora/services/storage"
	"rentora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler handles property image uploads and deletions.
type StorageHandler struct {
	StorageService storage.StorageService
}

// allowedFolders defines permitted upload folders.
var allowedFolders = map[string]bool{
	"images":     true,
	"properties": true,
}

// UploadImageHandler handles POST /api/admin/storage/:folder. The file is
// staged to a temp path and then pushed to the blob store.
func (h *StorageHandler) UploadImageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	folder := c.Param("folder")
	if !allowedFolders[folder] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid folder; allowed values are 'images' and 'properties'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "details": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "details": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	publicID, url, err := h.StorageService.UploadImage(c.Request.Context(), tempFilePath, folder)
	if err != nil {
		logger.Error("Failed to upload image", zap.String("folder", folder), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicId": publicID, "url": url})
}

// DeleteImageHandler handles DELETE /api/admin/storage. The public ID comes
// from the payload since it may contain slashes.
func (h *StorageHandler) DeleteImageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var input struct {
		PublicID string `json:"publicId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.PublicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publicId is required"})
		return
	}

	if err := h.StorageService.DeleteImage(c.Request.Context(), input.PublicID); err != nil {
		logger.Error("Failed to delete image", zap.String("publicId", input.PublicID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
