package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"duduk_sebentar/internal/models"
	"duduk_sebentar/internal/storage"
	"duduk_sebentar/pkg/config"
)

// sentEvent 記錄一筆送出的事件
type sentEvent struct {
	connID string
	event  *models.ServerEvent
}

// fakeTransport 取代 WebSocketManager，把所有送出的事件收起來供斷言。
// 計時器回呼在別的 goroutine 上觸發，所以需要鎖。
type fakeTransport struct {
	mu     sync.Mutex
	events []sentEvent
}

func (f *fakeTransport) Send(connID string, event *models.ServerEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, sentEvent{connID: connID, event: event})
}

func (f *fakeTransport) byType(eventType string) []sentEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []sentEvent
	for _, e := range f.events {
		if e.event.Type == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}

func (f *fakeTransport) sentTo(connID, eventType string) bool {
	for _, e := range f.byType(eventType) {
		if e.connID == connID {
			return true
		}
	}
	return false
}

func testRoomConfig() config.RoomConfig {
	return config.RoomConfig{
		NoGuestTimeout: 60 * time.Millisecond,
		GracePeriod:    25 * time.Millisecond,
		AutoStartDelay: time.Hour, // 測試用 player-ready 開始遊戲，避免自動開始干擾
		SweepInterval:  time.Hour,
		MaxRoomAge:     2 * time.Hour,
	}
}

func newTestService(cfg config.RoomConfig) (*RoomService, *fakeTransport, *storage.RoomStore) {
	store := storage.NewRoomStore()
	ft := &fakeTransport{}

	lifecycle := NewLifecycleManager(store, ft, cfg)
	game := NewGameService(ft)
	signaling := NewSignalingService(store, ft)
	svc := NewRoomService(store, cfg, ft, game, lifecycle, signaling)

	return svc, ft, store
}

const (
	hostConn  = "host-conn"
	guestConn = "guest-conn"
)

// createJoinedRoom 建好一間 host 與 guest 都在線的房間
func createJoinedRoom(t *testing.T, svc *RoomService) string {
	t.Helper()

	summary, err := svc.CreateRoom(hostConn, models.CreateRoomPayload{
		RoomName: "Duduk Dulu",
		UserName: "Alya",
		UserID:   "user-host",
	})
	require.NoError(t, err)

	_, err = svc.JoinRoom(guestConn, models.JoinRoomPayload{
		RoomCode: summary.Code,
		UserName: "Bima",
		UserID:   "user-guest",
	})
	require.NoError(t, err)

	return summary.Code
}

// startGame 用 player-ready 把遊戲開起來
func startGame(t *testing.T, svc *RoomService, code string) {
	t.Helper()
	svc.PlayerReady(hostConn, code)
}

func roomExists(store *storage.RoomStore, code string) bool {
	store.Lock()
	defer store.Unlock()
	return store.Exists(code)
}

func getRoom(t *testing.T, store *storage.RoomStore, code string) *models.Room {
	t.Helper()
	store.Lock()
	defer store.Unlock()
	room, ok := store.Get(code)
	require.True(t, ok, "room %s should exist", code)
	return room
}
