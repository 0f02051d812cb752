package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"duduk_sebentar/internal/models"
	"duduk_sebentar/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理 WebSocket 連接，
// 把收到的事件解碼、驗證後分派給 RoomService
type WebSocketHandler struct {
	wsManager   *service.WebSocketManager
	roomService *service.RoomService
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(wsManager *service.WebSocketManager, roomService *service.RoomService) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:   wsManager,
		roomService: roomService,
	}
}

// HandleWebSocket 處理 WebSocket 連接請求
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	client := h.wsManager.Register(conn)

	// 確保連接關閉時觸發斷線處理並清理資源
	defer func() {
		h.roomService.HandleDisconnect(client.ID)
		h.wsManager.Unregister(client)
		conn.Close()
	}()

	log.Printf("connection established: %s", client.ID)

	go h.wsManager.WritePump(client)
	h.readLoop(client)

	log.Printf("connection closed: %s", client.ID)
}

// readLoop 持續讀取並分派從 client 收到的事件
func (h *WebSocketHandler) readLoop(client *service.Client) {
	conn := client.Conn
	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		var msg models.ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("message parse error: %v", err)
			continue
		}

		h.dispatch(client, &msg)
	}
}

// dispatch 依事件名稱把 payload 解成對應型別再呼叫服務層。
// 格式不對的封包記錄後丟棄，不影響其他房間或連線。
func (h *WebSocketHandler) dispatch(client *service.Client, msg *models.ClientMessage) {
	switch msg.Type {
	case models.EventCreateRoom:
		var p models.CreateRoomPayload
		if !h.decode(msg, &p) || p.RoomName == "" || p.UserName == "" {
			h.reply(client, models.EventCreateRoomResult, &models.RoomResult{Error: "Payload tidak valid"})
			return
		}
		summary, err := h.roomService.CreateRoom(client.ID, p)
		if err != nil {
			h.reply(client, models.EventCreateRoomResult, &models.RoomResult{Error: createErrorMessage(err)})
			return
		}
		h.reply(client, models.EventCreateRoomResult, &models.RoomResult{
			Success:  true,
			RoomCode: summary.Code,
			Room:     summary,
		})

	case models.EventJoinRoom:
		var p models.JoinRoomPayload
		if !h.decode(msg, &p) || p.RoomCode == "" || p.UserName == "" {
			h.reply(client, models.EventJoinRoomResult, &models.RoomResult{Error: "Payload tidak valid"})
			return
		}
		summary, err := h.roomService.JoinRoom(client.ID, p)
		if err != nil {
			h.reply(client, models.EventJoinRoomResult, &models.RoomResult{Error: joinErrorMessage(err)})
			return
		}
		h.reply(client, models.EventJoinRoomResult, &models.RoomResult{
			Success: true,
			Room:    summary,
		})

	case models.EventPlayerReady:
		var p models.RoomCodePayload
		if h.decode(msg, &p) {
			h.roomService.PlayerReady(client.ID, p.RoomCode)
		}

	case models.EventCardResponse:
		var p models.CardResponsePayload
		if h.decode(msg, &p) {
			h.roomService.CardResponse(client.ID, p)
		}

	case models.EventWebRTCOffer, models.EventWebRTCAnswer, models.EventWebRTCICECandidate:
		var p models.SignalPayload
		if h.decode(msg, &p) {
			h.roomService.RelaySignal(client.ID, msg.Type, p)
		}

	case models.EventPlayAgain:
		var p models.RoomCodePayload
		if h.decode(msg, &p) {
			h.roomService.PlayAgain(p.RoomCode)
		}

	case models.EventCloseRoom:
		var p models.RoomCodePayload
		if h.decode(msg, &p) {
			h.roomService.CloseRoom(client.ID, p.RoomCode)
		}

	case models.EventRejoinRoom:
		var p models.RejoinPayload
		if !h.decode(msg, &p) || p.RoomCode == "" || p.UserName == "" {
			h.reply(client, models.EventRejoinRoomResult, &models.RoomResult{Error: "Payload tidak valid"})
			return
		}
		summary, resync, err := h.roomService.Rejoin(client.ID, p)
		if err != nil {
			h.reply(client, models.EventRejoinRoomResult, &models.RoomResult{Error: rejoinErrorMessage(err, p.IsHost)})
			return
		}
		h.reply(client, models.EventRejoinRoomResult, &models.RoomResult{
			Success: true,
			Room:    summary,
		})
		if resync != nil {
			h.reply(client, models.EventGameResync, resync)
		}

	default:
		log.Printf("unknown event type: %s", msg.Type)
	}
}

func (h *WebSocketHandler) decode(msg *models.ClientMessage, out interface{}) bool {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		log.Printf("invalid %s payload: %v", msg.Type, err)
		return false
	}
	return true
}

func (h *WebSocketHandler) reply(client *service.Client, eventType string, payload interface{}) {
	h.wsManager.Send(client.ID, models.NewServerEvent(eventType, payload))
}

// createErrorMessage 把建立房間的失敗轉成給使用者看的訊息。
// 代碼空間飽和屬於容量問題，對外只說伺服器忙碌。
func createErrorMessage(err error) string {
	if errors.Is(err, service.ErrCodeSpaceExhausted) {
		return "Gagal membuat kode room unik. Server terlalu penuh."
	}
	return "Gagal membuat room"
}

func joinErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		return "Room tidak ditemukan"
	case errors.Is(err, service.ErrSelfJoinForbidden):
		return "Lo ga bisa join room sendiri! Ini room lo yang bikin 😅"
	case errors.Is(err, service.ErrRoomFull):
		return "Room sudah penuh"
	case errors.Is(err, service.ErrAlreadyStarted):
		return "Game sudah dimulai"
	}
	return "Gagal join room"
}

func rejoinErrorMessage(err error, isHost bool) string {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		return "Room tidak ditemukan"
	case errors.Is(err, service.ErrNameMismatch):
		if isHost {
			return "Nama tidak cocok"
		}
		return "Anda bukan guest di room ini"
	}
	return "Gagal rejoin room"
}
