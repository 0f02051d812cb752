package service

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"duduk_sebentar/internal/models"
)

// Transport 將事件送往指定連線。
// 正式環境由 WebSocketManager 實作，測試時替換成記錄器。
type Transport interface {
	Send(connID string, event *models.ServerEvent)
}

// Client 代表一條 WebSocket 連線
type Client struct {
	ID       string                   // 伺服器配發的連線識別碼
	Conn     *websocket.Conn          // WebSocket 連線
	SendChan chan *models.ServerEvent // 發送佇列，由 WritePump 消化
}

// WebSocketManager 管理所有連線並負責對外推送事件
type WebSocketManager struct {
	clients    map[string]*Client
	clientsMux sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients: make(map[string]*Client),
	}
}

// Register 為新連線建立 Client 並配發識別碼
func (m *WebSocketManager) Register(conn *websocket.Conn) *Client {
	client := &Client{
		ID:       uuid.NewString(),
		Conn:     conn,
		SendChan: make(chan *models.ServerEvent, 64),
	}

	m.clientsMux.Lock()
	m.clients[client.ID] = client
	m.clientsMux.Unlock()

	return client
}

// Unregister 移除連線並關閉發送佇列。
// 關閉動作在寫鎖內進行，和 Send 的讀鎖互斥，不會關到還有人在送的 channel。
func (m *WebSocketManager) Unregister(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if _, ok := m.clients[client.ID]; ok {
		delete(m.clients, client.ID)
		close(client.SendChan)
	}
}

// Send 實作 Transport。
// 連線不存在（已斷線）時直接丟棄；佇列滿了也丟棄，不讓慢的 client 卡住別人。
func (m *WebSocketManager) Send(connID string, event *models.ServerEvent) {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	client, ok := m.clients[connID]
	if !ok {
		return
	}

	select {
	case client.SendChan <- event:
	default:
		log.Printf("send queue full, dropping %s event for connection %s", event.Type, connID)
	}
}

// WritePump 處理向 client 發送訊息的迴圈，並定期送出心跳
func (m *WebSocketManager) WritePump(client *Client) {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-client.SendChan:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
