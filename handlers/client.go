package handlers

import (
	"net/http"

	"rentora/middleware"
	"rentora/models"
	"rentora/services/client"
	"rentora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClientHandler exposes the renting-party directory to the back office.
type ClientHandler struct {
	ClientService client.ClientService
}

// ListClientsHandler handles GET /api/admin/clients.
func (h *ClientHandler) ListClientsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	clients, err := h.ClientService.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list clients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClientHandler handles GET /api/admin/clients/:id.
func (h *ClientHandler) GetClientHandler(c *gin.Context) {
	id := c.Param("id")
	cl, err := h.ClientService.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cl)
}

// CreateClientHandler handles POST /api/admin/clients.
func (h *ClientHandler) CreateClientHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var cl models.Client
	if err := c.ShouldBindJSON(&cl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	created, err := h.ClientService.Create(c.Request.Context(), middleware.CallerUID(c), &cl)
	if err != nil {
		logger.Error("Failed to create client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateClientHandler handles PUT /api/admin/clients/:id.
func (h *ClientHandler) UpdateClientHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var cl models.Client
	if err := c.ShouldBindJSON(&cl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	cl.ID = c.Param("id")
	updated, err := h.ClientService.Update(c.Request.Context(), &cl)
	if err != nil {
		logger.Error("Failed to update client", zap.String("id", cl.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteClientHandler handles DELETE /api/admin/clients/:id.
func (h *ClientHandler) DeleteClientHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if err := h.ClientService.Delete(c.Request.Context(), id); err != nil {
		logger.Error("Failed to delete client", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}
