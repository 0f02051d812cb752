package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"duduk_sebentar/internal/service"
)

// RoomHandler 處理與房間相關的 HTTP 請求
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler 創建一個新的 RoomHandler 實例
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// GetRoom 處理獲取房間摘要的請求
func (h *RoomHandler) GetRoom(c *gin.Context) {
	summary, err := h.roomService.RoomSummary(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房間不存在"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
