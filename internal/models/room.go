package models

import (
	"time"
)

// Role 標識參與者在房間中的角色
type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

// Other 回傳對手方的角色
func (r Role) Other() Role {
	if r == RoleHost {
		return RoleGuest
	}
	return RoleHost
}

// Participant 代表房間中的一位參與者
type Participant struct {
	ConnID         string    // 當前傳輸連線的識別碼，斷線期間為空字串
	Name           string    // 顯示名稱，加入時固定，重連時逐字比對驗證身份
	UserID         string    // 僅 host 持有，用來擋下建立者加入自己的房間
	Ready          bool      // 是否已按下準備
	DisconnectedAt time.Time // 斷線時間，零值代表目前在線
}

// Connected 回報參與者是否仍掛著有效連線
func (p *Participant) Connected() bool {
	return p != nil && p.ConnID != ""
}

// GameState 保存一場遊戲的進度
type GameState struct {
	Started          bool
	CurrentTurn      Role
	Cards            []QuestionCard // 每個房間獨立洗牌抽出的 16 張卡
	CurrentCardIndex int
	Responses        []CardResponse
	TotalRounds      int
}

// Finished 判斷遊戲是否結束。
// 由 CurrentCardIndex 對 TotalRounds 推導，不另存旗標，避免兩份狀態脫鉤。
func (g *GameState) Finished() bool {
	return g.CurrentCardIndex >= g.TotalRounds
}

// CardResponse 一筆已記錄的回答
type CardResponse struct {
	CardID    int    `json:"cardId"`
	Question  string `json:"question"`
	Asker     string `json:"asker"`
	Responder string `json:"responder"`
	Liked     bool   `json:"liked"`
}

// Room 代表一個雙人遊戲房間
type Room struct {
	Code      string
	Name      string
	Host      *Participant
	Guest     *Participant // 加入前為 nil
	Game      GameState
	CreatedAt time.Time

	// NoGuestTimer 只在建立到 guest 加入之間存活，
	// guest 加入或計時器觸發後即清空
	NoGuestTimer *time.Timer
}

// Participant 依角色取出參與者，guest 尚未加入時回傳 nil
func (r *Room) Participant(role Role) *Participant {
	if role == RoleHost {
		return r.Host
	}
	return r.Guest
}

// ParticipantByConn 依連線識別碼找出參與者及其角色
func (r *Room) ParticipantByConn(connID string) (*Participant, Role) {
	if connID == "" {
		return nil, ""
	}
	if r.Host != nil && r.Host.ConnID == connID {
		return r.Host, RoleHost
	}
	if r.Guest != nil && r.Guest.ConnID == connID {
		return r.Guest, RoleGuest
	}
	return nil, ""
}
