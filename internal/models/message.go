package models

import "encoding/json"

// client -> server 事件名稱
const (
	EventCreateRoom         = "create-room"
	EventJoinRoom           = "join-room"
	EventPlayerReady        = "player-ready"
	EventCardResponse       = "card-response"
	EventWebRTCOffer        = "webrtc-offer"
	EventWebRTCAnswer       = "webrtc-answer"
	EventWebRTCICECandidate = "webrtc-ice-candidate"
	EventPlayAgain          = "play-again"
	EventCloseRoom          = "close-room"
	EventRejoinRoom         = "rejoin-room"
)

// server -> client 事件名稱
const (
	EventCreateRoomResult = "create-room-result"
	EventJoinRoomResult   = "join-room-result"
	EventRejoinRoomResult = "rejoin-room-result"
	EventGuestJoined      = "guest-joined"
	EventGameStart        = "game-start"
	EventNextTurn         = "next-turn"
	EventGameOver         = "game-over"
	EventGameResync       = "game-resync"
	EventRoomClosed       = "room-closed"
	EventResetToLobby     = "reset-to-lobby"
)

// ClientMessage 是 client 送上來的事件封包。
// Payload 依 Type 解成對應的結構，在 gateway 邊界驗證完才進服務層。
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerEvent 推送給 client 的事件封包
type ServerEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewServerEvent(eventType string, payload interface{}) *ServerEvent {
	return &ServerEvent{Type: eventType, Payload: payload}
}

// ---- client -> server payloads ----

type CreateRoomPayload struct {
	RoomName string `json:"roomName"`
	UserName string `json:"userName"`
	UserID   string `json:"userId"`
}

type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	UserName string `json:"userName"`
	UserID   string `json:"userId"`
}

// RoomCodePayload 用於只帶房間代碼的事件（player-ready、play-again、close-room）
type RoomCodePayload struct {
	RoomCode string `json:"roomCode"`
}

type CardResponsePayload struct {
	RoomCode string `json:"roomCode"`
	Liked    bool   `json:"liked"`
}

type RejoinPayload struct {
	RoomCode string `json:"roomCode"`
	UserName string `json:"userName"`
	IsHost   bool   `json:"isHost"`
}

// SignalPayload 承載 WebRTC signaling 轉送。
// 內容一律當作不透明資料，依事件種類只會填入其中一個欄位。
type SignalPayload struct {
	RoomCode  string          `json:"roomCode"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

// ---- server -> client payloads ----

// RoomSummary 回傳給 client 的房間摘要
type RoomSummary struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	HostName         string `json:"hostName"`
	GuestName        string `json:"guestName,omitempty"`
	GameStarted      bool   `json:"gameStarted"`
	CurrentCardIndex int    `json:"currentCardIndex"`
}

// RoomResult 是 create/join/rejoin 的回覆
type RoomResult struct {
	Success  bool         `json:"success"`
	RoomCode string       `json:"roomCode,omitempty"`
	Room     *RoomSummary `json:"room,omitempty"`
	Error    string       `json:"error,omitempty"`
}

type GuestJoinedPayload struct {
	GuestName string `json:"guestName"`
}

// TurnPayload 同時用於 game-start、next-turn 與 game-resync。
// Card 只發給持有回合的那一方，另一方拿到 null，
// 避免提問者提前看到要唸給對方聽的題目。
type TurnPayload struct {
	YourTurn     bool          `json:"yourTurn"`
	Card         *QuestionCard `json:"card"`
	PartnerName  string        `json:"partnerName,omitempty"`
	RoundNumber  int           `json:"roundNumber"`
	TotalRounds  int           `json:"totalRounds"`
	LastResponse *bool         `json:"lastResponse,omitempty"`
}

// CompatibilityResult 遊戲結束時的契合度統計
type CompatibilityResult struct {
	Percentage     int    `json:"percentage"`
	Message        string `json:"message"`
	Emoji          string `json:"emoji"`
	TotalLikes     int    `json:"totalLikes"`
	TotalDislikes  int    `json:"totalDislikes"`
	TotalQuestions int    `json:"totalQuestions"`
}

type GameOverPayload struct {
	Result    CompatibilityResult `json:"result"`
	Responses []CardResponse      `json:"responses"`
	HostName  string              `json:"hostName"`
	GuestName string              `json:"guestName"`
}

// NoticePayload 單純帶一句訊息的通知（room-closed、reset-to-lobby）
type NoticePayload struct {
	Message string `json:"message"`
}

type OfferPayload struct {
	Offer json.RawMessage `json:"offer"`
}

type AnswerPayload struct {
	Answer json.RawMessage `json:"answer"`
}

type CandidatePayload struct {
	Candidate json.RawMessage `json:"candidate"`
}
