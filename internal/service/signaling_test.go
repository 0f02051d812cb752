package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duduk_sebentar/internal/models"
)

func TestRelayOfferToOtherSide(t *testing.T) {
	svc, ft, _ := newTestService(testRoomConfig())
	code := createJoinedRoom(t, svc)

	offer := json.RawMessage(`{"type":"offer","sdp":"v=0"}`)
	svc.RelaySignal(hostConn, models.EventWebRTCOffer, models.SignalPayload{
		RoomCode: code,
		Offer:    offer,
	})

	sent := ft.byType(models.EventWebRTCOffer)
	require.Len(t, sent, 1)
	assert.Equal(t, guestConn, sent[0].connID)
	payload := sent[0].event.Payload.(*models.OfferPayload)
	assert.JSONEq(t, string(offer), string(payload.Offer))
}

func TestRelayAnswerAndCandidateBackToHost(t *testing.T) {
	svc, ft, _ := newTestService(testRoomConfig())
	code := createJoinedRoom(t, svc)

	svc.RelaySignal(guestConn, models.EventWebRTCAnswer, models.SignalPayload{
		RoomCode: code,
		Answer:   json.RawMessage(`{"type":"answer"}`),
	})
	svc.RelaySignal(guestConn, models.EventWebRTCICECandidate, models.SignalPayload{
		RoomCode:  code,
		Candidate: json.RawMessage(`{"candidate":"candidate:1"}`),
	})

	answers := ft.byType(models.EventWebRTCAnswer)
	require.Len(t, answers, 1)
	assert.Equal(t, hostConn, answers[0].connID)

	candidates := ft.byType(models.EventWebRTCICECandidate)
	require.Len(t, candidates, 1)
	assert.Equal(t, hostConn, candidates[0].connID)
}

func TestRelayDroppedWhenTargetDisconnected(t *testing.T) {
	cfg := testRoomConfig()
	cfg.GracePeriod = time.Hour
	svc, ft, _ := newTestService(cfg)
	code := createJoinedRoom(t, svc)

	svc.HandleDisconnect(guestConn)
	svc.RelaySignal(hostConn, models.EventWebRTCOffer, models.SignalPayload{
		RoomCode: code,
		Offer:    json.RawMessage(`{}`),
	})

	assert.Empty(t, ft.byType(models.EventWebRTCOffer))
}

func TestRelayIgnoresStrangersAndUnknownRooms(t *testing.T) {
	svc, ft, _ := newTestService(testRoomConfig())
	code := createJoinedRoom(t, svc)

	// 不屬於房間的連線
	svc.RelaySignal("stranger-conn", models.EventWebRTCOffer, models.SignalPayload{
		RoomCode: code,
		Offer:    json.RawMessage(`{}`),
	})
	// 不存在的房間
	svc.RelaySignal(hostConn, models.EventWebRTCOffer, models.SignalPayload{
		RoomCode: "ZZZZZZ",
		Offer:    json.RawMessage(`{}`),
	})

	assert.Empty(t, ft.byType(models.EventWebRTCOffer))
}
