package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"duduk_sebentar/internal/models"
	"duduk_sebentar/internal/storage"
	"duduk_sebentar/pkg/config"
)

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrSelfJoinForbidden = errors.New("cannot join own room")
	ErrRoomFull          = errors.New("room is full")
	ErrAlreadyStarted    = errors.New("game already started")
)

// RoomService 是對外事件的入口：檢查前置條件後分派給
// 遊戲引擎、生命週期管理與 signaling 轉送。
// 每個操作都在 store 的鎖內完成整段檢查與修改。
type RoomService struct {
	store     *storage.RoomStore
	cfg       config.RoomConfig
	ws        Transport
	allocator *CodeAllocator
	game      *GameService
	lifecycle *LifecycleManager
	signaling *SignalingService
}

func NewRoomService(
	store *storage.RoomStore,
	cfg config.RoomConfig,
	ws Transport,
	game *GameService,
	lifecycle *LifecycleManager,
	signaling *SignalingService,
) *RoomService {
	return &RoomService{
		store:     store,
		cfg:       cfg,
		ws:        ws,
		allocator: NewCodeAllocator(store),
		game:      game,
		lifecycle: lifecycle,
		signaling: signaling,
	}
}

// CreateRoom 配發唯一代碼並建立房間，host 即為建立者。
// 同時排定無人加入的自動刪除。
func (s *RoomService) CreateRoom(connID string, p models.CreateRoomPayload) (*models.RoomSummary, error) {
	s.store.Lock()
	defer s.store.Unlock()

	code, err := s.allocator.Allocate()
	if err != nil {
		return nil, err
	}

	room := &models.Room{
		Code: code,
		Name: p.RoomName,
		Host: &models.Participant{
			ConnID: connID,
			Name:   p.UserName,
			UserID: p.UserID,
		},
		Game: models.GameState{
			Cards:       DrawCards(sessionDeckSize),
			Responses:   make([]models.CardResponse, 0, sessionDeckSize),
			TotalRounds: sessionDeckSize,
		},
		CreatedAt: time.Now(),
	}
	s.store.Put(room)
	room.NoGuestTimer = s.lifecycle.ScheduleNoGuestExpiry(code)

	log.Printf("room created: %s by %s, active rooms: %d", code, p.UserName, s.store.Len())
	return roomSummary(room), nil
}

// JoinRoom 讓 guest 加入房間。
// 成功後取消自動刪除、通知 host，並排定延遲自動開始。
func (s *RoomService) JoinRoom(connID string, p models.JoinRoomPayload) (*models.RoomSummary, error) {
	s.store.Lock()
	defer s.store.Unlock()

	code := strings.ToUpper(p.RoomCode)
	room, ok := s.store.Get(code)
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.Host.UserID == p.UserID {
		return nil, ErrSelfJoinForbidden
	}
	if room.Guest != nil {
		return nil, ErrRoomFull
	}
	if room.Game.Started {
		return nil, ErrAlreadyStarted
	}

	room.Guest = &models.Participant{
		ConnID: connID,
		Name:   p.UserName,
		Ready:  true, // guest 一加入就視為準備完成
	}
	s.lifecycle.CancelNoGuestExpiry(room)

	s.ws.Send(room.Host.ConnID, models.NewServerEvent(models.EventGuestJoined, &models.GuestJoinedPayload{
		GuestName: p.UserName,
	}))

	// 延遲自動開始；觸發時重新驗證房間還在、guest 還在、遊戲還沒開始，
	// 和 player-ready 觸發的開始互為冪等
	time.AfterFunc(s.cfg.AutoStartDelay, func() {
		s.store.Lock()
		defer s.store.Unlock()

		current, ok := s.store.Get(code)
		if !ok || current.Guest == nil || current.Game.Started {
			return
		}
		s.game.Start(current)
	})

	log.Printf("%s joined room %s", p.UserName, code)
	return roomSummary(room), nil
}

// PlayerReady 標記參與者已準備，雙方都準備好就開始遊戲
func (s *RoomService) PlayerReady(connID string, roomCode string) {
	s.store.Lock()
	defer s.store.Unlock()

	room, ok := s.store.Get(roomCode)
	if !ok {
		return
	}

	participant, _ := room.ParticipantByConn(connID)
	if participant == nil {
		return
	}
	participant.Ready = true

	if room.Game.Started {
		return
	}
	if room.Host.Ready && room.Guest != nil && room.Guest.Ready {
		s.game.Start(room)
	}
}

// CardResponse 把回答交給遊戲引擎處理
func (s *RoomService) CardResponse(connID string, p models.CardResponsePayload) {
	s.store.Lock()
	defer s.store.Unlock()

	room, ok := s.store.Get(p.RoomCode)
	if !ok {
		return
	}
	s.game.RecordResponse(room, connID, p.Liked)
}

// RelaySignal 轉送 WebRTC signaling 給房間裡的另一方
func (s *RoomService) RelaySignal(connID, eventType string, p models.SignalPayload) {
	s.signaling.Relay(connID, eventType, p)
}

// Rejoin 處理斷線重連
func (s *RoomService) Rejoin(connID string, p models.RejoinPayload) (*models.RoomSummary, *models.TurnPayload, error) {
	return s.lifecycle.Rejoin(connID, p)
}

// HandleDisconnect 處理傳輸層斷線
func (s *RoomService) HandleDisconnect(connID string) {
	s.lifecycle.HandleDisconnect(connID)
}

// PlayAgain 把雙方送回 lobby 並刪除房間，不管遊戲進行到哪
func (s *RoomService) PlayAgain(roomCode string) {
	s.store.Lock()
	defer s.store.Unlock()

	room, ok := s.store.Get(roomCode)
	if !ok {
		return
	}

	notice := models.NewServerEvent(models.EventResetToLobby, &models.NoticePayload{
		Message: "Kembali ke lobby untuk main lagi!",
	})
	if room.Host.Connected() {
		s.ws.Send(room.Host.ConnID, notice)
	}
	if room.Guest.Connected() {
		s.ws.Send(room.Guest.ConnID, notice)
	}

	s.lifecycle.RemoveRoom(room)
	log.Printf("room deleted after play again: %s", roomCode)
}

// CloseRoom 由 host 主動關房。請求者不是 host 的現役連線就直接忽略。
func (s *RoomService) CloseRoom(connID string, roomCode string) {
	s.store.Lock()
	defer s.store.Unlock()

	room, ok := s.store.Get(roomCode)
	if !ok {
		return
	}
	if room.Host.ConnID != connID {
		return
	}

	if room.Guest.Connected() {
		s.ws.Send(room.Guest.ConnID, models.NewServerEvent(models.EventRoomClosed, &models.NoticePayload{
			Message: "Host menutup room.",
		}))
	}

	s.lifecycle.RemoveRoom(room)
	log.Printf("room closed by host: %s", roomCode)
}

// RoomSummary 提供查詢端點用的房間摘要
func (s *RoomService) RoomSummary(roomCode string) (*models.RoomSummary, error) {
	s.store.Lock()
	defer s.store.Unlock()

	room, ok := s.store.Get(strings.ToUpper(roomCode))
	if !ok {
		return nil, ErrRoomNotFound
	}
	return roomSummary(room), nil
}

func roomSummary(room *models.Room) *models.RoomSummary {
	summary := &models.RoomSummary{
		Code:             room.Code,
		Name:             room.Name,
		HostName:         room.Host.Name,
		GameStarted:      room.Game.Started,
		CurrentCardIndex: room.Game.CurrentCardIndex,
	}
	if room.Guest != nil {
		summary.GuestName = room.Guest.Name
	}
	return summary
}
