// Package api 處理 HTTP 請求路由和處理。
//
// 這個包包含了所有的 HTTP 處理器（handlers）。
// 它負責把 HTTP 與 WebSocket 請求轉換為適當的服務調用，
// 並將結果轉換回對 client 的回應或事件。
package api
