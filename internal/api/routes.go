package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"duduk_sebentar/internal/api/handlers"
	"duduk_sebentar/internal/middleware"
	"duduk_sebentar/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	roomHandler := handlers.NewRoomHandler(services.Room)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocket, services.Room)

	// 遊戲客戶端與伺服器分開部署，開放跨域
	r.Use(middleware.CORS())

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// API 路由群組
	api := r.Group("/api")
	{
		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// 讓 client 在開 WebSocket 前先確認房間代碼有效
		api.GET("/rooms/:code", roomHandler.GetRoom)
	}

	// WebSocket 連接點，所有遊戲事件都走這條
	r.GET("/ws", wsHandler.HandleWebSocket)
}
