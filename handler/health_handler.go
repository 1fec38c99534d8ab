package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) HandleWelcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "Welcome to the document search API",
		"version":     "1.0.0",
		"description": "The API is up and running",
	})
}

func (h *HealthHandler) HandlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
