package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CorsHandler struct{}

func NewCorsHandler() *CorsHandler {
	return &CorsHandler{}
}

func (h *CorsHandler) CorsMiddleware(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}
