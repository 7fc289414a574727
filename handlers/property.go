package handlers

import (
	"net/http"
	"strconv"

	"rentora/middleware"
	"rentora/models"
	"rentora/services/property"
	"rentora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PropertyHandler exposes the rental unit catalogue. Listing and detail are
// public (they feed the marketing site); mutations sit behind admin auth.
type PropertyHandler struct {
	PropertyService property.PropertyService
}

func propertyFilterFromQuery(c *gin.Context) models.PropertyFilter {
	filter := models.PropertyFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		filter.MaxPrice = v
	}
	if v, err := strconv.Atoi(c.Query("minBedrooms")); err == nil {
		filter.MinBedrooms = v
	}
	if v, err := strconv.Atoi(c.Query("minBathrooms")); err == nil {
		filter.MinBathrooms = v
	}
	return filter
}

// ListPropertiesHandler handles GET /api/properties.
func (h *PropertyHandler) ListPropertiesHandler(c *gin.Context) {
	logger := utils.GetLogger()
	properties, err := h.PropertyService.List(c.Request.Context(), propertyFilterFromQuery(c))
	if err != nil {
		logger.Error("Failed to list properties", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetPropertyHandler handles GET /api/properties/:id.
func (h *PropertyHandler) GetPropertyHandler(c *gin.Context) {
	id := c.Param("id")
	prop, err := h.PropertyService.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prop)
}

// CreatePropertyHandler handles POST /api/admin/properties.
func (h *PropertyHandler) CreatePropertyHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var prop models.Property
	if err := c.ShouldBindJSON(&prop); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	created, err := h.PropertyService.Create(c.Request.Context(), middleware.CallerUID(c), &prop)
	if err != nil {
		logger.Error("Failed to create property", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdatePropertyHandler handles PUT /api/admin/properties/:id.
func (h *PropertyHandler) UpdatePropertyHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var prop models.Property
	if err := c.ShouldBindJSON(&prop); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	prop.ID = c.Param("id")
	updated, err := h.PropertyService.Update(c.Request.Context(), &prop)
	if err != nil {
		logger.Error("Failed to update property", zap.String("id", prop.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePropertyHandler handles DELETE /api/admin/properties/:id.
func (h *PropertyHandler) DeletePropertyHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if err := h.PropertyService.Delete(c.Request.Context(), id); err != nil {
		logger.Error("Failed to delete property", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}
