package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/meeting-planner/internal/handlers"
)

func APIEndpoints(r *gin.Engine, wsH *handlers.WebSocketHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Realtime endpoints
	r.GET("/ws", wsH.HandleWebSocket)
}
