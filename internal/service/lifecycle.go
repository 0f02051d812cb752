package service

import (
	"errors"
	"log"
	"time"

	"duduk_sebentar/internal/models"
	"duduk_sebentar/internal/storage"
	"duduk_sebentar/pkg/config"
)

var ErrNameMismatch = errors.New("display name mismatch")

// LifecycleManager 擁有所有計時器：無人加入的自動刪除、斷線寬限期、
// 過期房間清掃，並負責最終的房間刪除與通知。
//
// 每個計時器回呼都在鎖內重新以代碼取出房間並重新驗證觸發條件，
// 絕不沿用排程當下抓到的快照；房間狀態在計時期間可能早已改變。
type LifecycleManager struct {
	store *storage.RoomStore
	ws    Transport
	cfg   config.RoomConfig
}

func NewLifecycleManager(store *storage.RoomStore, ws Transport, cfg config.RoomConfig) *LifecycleManager {
	return &LifecycleManager{
		store: store,
		ws:    ws,
		cfg:   cfg,
	}
}

// ScheduleNoGuestExpiry 排定「無人加入」的自動刪除。
// 觸發時只有在房間還在而且仍然沒有 guest 才動手。
func (l *LifecycleManager) ScheduleNoGuestExpiry(code string) *time.Timer {
	return time.AfterFunc(l.cfg.NoGuestTimeout, func() {
		l.store.Lock()
		defer l.store.Unlock()

		room, ok := l.store.Get(code)
		if !ok || room.Guest != nil {
			return
		}

		if room.Host.Connected() {
			l.ws.Send(room.Host.ConnID, models.NewServerEvent(models.EventRoomClosed, &models.NoticePayload{
				Message: "Room ditutup karena tidak ada yang join dalam 1 menit.",
			}))
		}
		l.RemoveRoom(room)
		log.Printf("room auto-deleted, no guest joined: %s", code)
	})
}

// CancelNoGuestExpiry 在 guest 成功加入的當下取消自動刪除
func (l *LifecycleManager) CancelNoGuestExpiry(room *models.Room) {
	if room.NoGuestTimer != nil {
		room.NoGuestTimer.Stop()
		room.NoGuestTimer = nil
	}
}

// RemoveRoom 把房間從 store 移除並停掉還掛著的計時器。
// 呼叫端須持有鎖。
func (l *LifecycleManager) RemoveRoom(room *models.Room) {
	l.CancelNoGuestExpiry(room)
	l.store.Delete(room.Code)
	log.Printf("room deleted: %s, active rooms: %d", room.Code, l.store.Len())
}

// HandleDisconnect 處理傳輸層的斷線通知。
// 逐一掃描存活房間找出這條連線扮演的角色；刪除的優先序：
// 遊戲已結束 > 無人加入 > 一般寬限期。
func (l *LifecycleManager) HandleDisconnect(connID string) {
	l.store.Lock()
	defer l.store.Unlock()

	for _, room := range l.store.All() {
		switch {
		case room.Host != nil && room.Host.ConnID == connID:
			l.hostDisconnected(room)
		case room.Guest != nil && room.Guest.ConnID == connID:
			l.guestDisconnected(room)
		}
	}
}

func (l *LifecycleManager) hostDisconnected(room *models.Room) {
	switch {
	case room.Guest == nil && !room.Game.Started:
		age := time.Since(room.CreatedAt)
		if age >= l.cfg.NoGuestTimeout {
			// 原本的無人加入計時器早該處理掉了，這裡防禦性補刪
			l.RemoveRoom(room)
			return
		}

		// 寬限到原本 60 秒期限為止，不是往後再延一段
		room.Host.ConnID = ""
		room.Host.DisconnectedAt = time.Now()
		code := room.Code
		time.AfterFunc(l.cfg.NoGuestTimeout-age, func() {
			l.store.Lock()
			defer l.store.Unlock()

			current, ok := l.store.Get(code)
			if !ok || current.Host.Connected() || current.Guest != nil {
				return
			}
			l.RemoveRoom(current)
			log.Printf("room deleted after grace period, no guest joined: %s", code)
		})

	case room.Game.Finished():
		if room.Guest.Connected() {
			l.ws.Send(room.Guest.ConnID, models.NewServerEvent(models.EventRoomClosed, &models.NoticePayload{
				Message: "Partner sudah keluar.",
			}))
		}
		l.RemoveRoom(room)

	default:
		room.Host.ConnID = ""
		room.Host.DisconnectedAt = time.Now()
		code := room.Code
		time.AfterFunc(l.cfg.GracePeriod, func() {
			l.store.Lock()
			defer l.store.Unlock()

			current, ok := l.store.Get(code)
			if !ok || current.Host.Connected() {
				return
			}
			if current.Guest.Connected() {
				l.ws.Send(current.Guest.ConnID, models.NewServerEvent(models.EventRoomClosed, &models.NoticePayload{
					Message: "Host tidak kembali. Room ditutup.",
				}))
			}
			l.RemoveRoom(current)
			log.Printf("room deleted, host did not return: %s", code)
		})
	}
}

func (l *LifecycleManager) guestDisconnected(room *models.Room) {
	if room.Game.Finished() {
		if room.Host.Connected() {
			l.ws.Send(room.Host.ConnID, models.NewServerEvent(models.EventRoomClosed, &models.NoticePayload{
				Message: "Partner sudah keluar.",
			}))
		}
		l.RemoveRoom(room)
		return
	}

	room.Guest.ConnID = ""
	room.Guest.DisconnectedAt = time.Now()
	code := room.Code
	time.AfterFunc(l.cfg.GracePeriod, func() {
		l.store.Lock()
		defer l.store.Unlock()

		current, ok := l.store.Get(code)
		if !ok || current.Guest == nil || current.Guest.Connected() {
			return
		}
		if current.Host.Connected() {
			l.ws.Send(current.Host.ConnID, models.NewServerEvent(models.EventRoomClosed, &models.NoticePayload{
				Message: "Partner tidak kembali. Room ditutup.",
			}))
		}
		l.RemoveRoom(current)
		log.Printf("room deleted, guest did not return: %s", code)
	})
}

// Rejoin 讓斷線的參與者用原本的顯示名稱接回連線。
// 名稱驗證通過就換上新的連線識別碼；寬限期計時器觸發時
// 看到連線已恢復自然成為 no-op，不需要另外取消。
// 回傳房間摘要，若遊戲已開始另附 resync 內容。
func (l *LifecycleManager) Rejoin(connID string, p models.RejoinPayload) (*models.RoomSummary, *models.TurnPayload, error) {
	l.store.Lock()
	defer l.store.Unlock()

	room, ok := l.store.Get(p.RoomCode)
	if !ok {
		return nil, nil, ErrRoomNotFound
	}

	role := models.RoleGuest
	if p.IsHost {
		role = models.RoleHost
	}
	participant := room.Participant(role)
	if participant == nil || participant.Name != p.UserName {
		return nil, nil, ErrNameMismatch
	}

	participant.ConnID = connID
	participant.DisconnectedAt = time.Time{}
	log.Printf("%s reconnected to room %s", role, room.Code)

	summary := roomSummary(room)

	// 對方也在線上才有意義補發遊戲進度
	var resync *models.TurnPayload
	partner := room.Participant(role.Other())
	if room.Game.Started && partner.Connected() {
		yourTurn := room.Game.CurrentTurn == role
		var card *models.QuestionCard
		if yourTurn && !room.Game.Finished() {
			card = &room.Game.Cards[room.Game.CurrentCardIndex]
		}
		resync = &models.TurnPayload{
			YourTurn:    yourTurn,
			Card:        card,
			PartnerName: partner.Name,
			RoundNumber: room.Game.CurrentCardIndex + 1,
			TotalRounds: room.Game.TotalRounds,
		}
	}

	return summary, resync, nil
}

// StartSweeper 啟動定期清掃，作為沒走到任何終止條件的房間的最後防線
func (l *LifecycleManager) StartSweeper() {
	go func() {
		ticker := time.NewTicker(l.cfg.SweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			l.Sweep(time.Now())
		}
	}()
}

// Sweep 刪除建立時間超過 MaxRoomAge 的房間，不管連線狀態
func (l *LifecycleManager) Sweep(now time.Time) {
	l.store.Lock()
	defer l.store.Unlock()

	for _, room := range l.store.All() {
		if now.Sub(room.CreatedAt) > l.cfg.MaxRoomAge {
			l.RemoveRoom(room)
			log.Printf("cleaned up stale room: %s", room.Code)
		}
	}
}
