package service

import (
	"duduk_sebentar/internal/models"
	"duduk_sebentar/internal/storage"
)

// SignalingService 無狀態地把 WebRTC signaling 封包轉送給
// 房間裡「另一位」參與者，內容完全不檢查。
// 對方離線時直接丟棄；signaling 本來就是 best-effort，
// 漏掉的部分由重新協商補上。
type SignalingService struct {
	store *storage.RoomStore
	ws    Transport
}

func NewSignalingService(store *storage.RoomStore, ws Transport) *SignalingService {
	return &SignalingService{
		store: store,
		ws:    ws,
	}
}

// Relay 依送件者的連線找出對方並轉送
func (s *SignalingService) Relay(connID, eventType string, p models.SignalPayload) {
	s.store.Lock()
	defer s.store.Unlock()

	room, ok := s.store.Get(p.RoomCode)
	if !ok {
		return
	}

	var target *models.Participant
	switch {
	case room.Host != nil && room.Host.ConnID == connID:
		target = room.Guest
	case room.Guest != nil && room.Guest.ConnID == connID:
		target = room.Host
	default:
		// 不是這間房的連線
		return
	}
	if !target.Connected() {
		return
	}

	var payload interface{}
	switch eventType {
	case models.EventWebRTCOffer:
		payload = &models.OfferPayload{Offer: p.Offer}
	case models.EventWebRTCAnswer:
		payload = &models.AnswerPayload{Answer: p.Answer}
	case models.EventWebRTCICECandidate:
		payload = &models.CandidatePayload{Candidate: p.Candidate}
	default:
		return
	}

	s.ws.Send(target.ConnID, models.NewServerEvent(eventType, payload))
}
