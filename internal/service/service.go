package service

import (
	"duduk_sebentar/internal/storage"
	"duduk_sebentar/pkg/config"
)

type Services struct {
	Room      *RoomService
	Lifecycle *LifecycleManager
	WebSocket *WebSocketManager
}

func NewServices(store *storage.RoomStore, cfg config.RoomConfig) *Services {
	wsManager := NewWebSocketManager()

	lifecycle := NewLifecycleManager(store, wsManager, cfg)
	game := NewGameService(wsManager)
	signaling := NewSignalingService(store, wsManager)
	roomService := NewRoomService(store, cfg, wsManager, game, lifecycle, signaling)

	return &Services{
		Room:      roomService,
		Lifecycle: lifecycle,
		WebSocket: wsManager,
	}
}
