package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duduk_sebentar/internal/models"
)

func TestNoGuestExpiryDeletesRoom(t *testing.T) {
	cfg := testRoomConfig()
	svc, ft, store := newTestService(cfg)

	summary, err := svc.CreateRoom(hostConn, models.CreateRoomPayload{
		RoomName: "Duduk Dulu",
		UserName: "Alya",
		UserID:   "user-host",
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return !roomExists(store, summary.Code)
	}, time.Second, 5*time.Millisecond)

	assert.True(t, ft.sentTo(hostConn, models.EventRoomClosed))
}

func TestHostDisconnectEmptyRoomKeepsOriginalDeadline(t *testing.T) {
	cfg := testRoomConfig()
	svc, _, store := newTestService(cfg)

	summary, err := svc.CreateRoom(hostConn, models.CreateRoomPayload{
		RoomName: "Duduk Dulu",
		UserName: "Alya",
		UserID:   "user-host",
	})
	require.NoError(t, err)

	svc.HandleDisconnect(hostConn)

	// 寬限到原本的 no-guest 期限為止，不是斷線後再延一整段
	assert.True(t, roomExists(store, summary.Code))
	assert.Eventually(t, func() bool {
		return !roomExists(store, summary.Code)
	}, time.Second, 5*time.Millisecond)
}

func TestHostDisconnectOldEmptyRoomDeletedImmediately(t *testing.T) {
	cfg := testRoomConfig()
	svc, _, store := newTestService(cfg)

	summary, err := svc.CreateRoom(hostConn, models.CreateRoomPayload{
		RoomName: "Duduk Dulu",
		UserName: "Alya",
		UserID:   "user-host",
	})
	require.NoError(t, err)

	room := getRoom(t, store, summary.Code)
	store.Lock()
	room.CreatedAt = time.Now().Add(-2 * cfg.NoGuestTimeout)
	store.Unlock()

	svc.HandleDisconnect(hostConn)
	assert.False(t, roomExists(store, summary.Code))
}

func TestGuestDisconnectThenRejoinWithinGrace(t *testing.T) {
	cfg := testRoomConfig()
	cfg.GracePeriod = 80 * time.Millisecond
	svc, _, store := newTestService(cfg)
	code := createJoinedRoom(t, svc)

	svc.HandleDisconnect(guestConn)
	room := getRoom(t, store, code)
	assert.False(t, room.Guest.Connected())
	assert.False(t, room.Guest.DisconnectedAt.IsZero())

	_, _, err := svc.Rejoin("guest-conn-2", models.RejoinPayload{
		RoomCode: code,
		UserName: "Bima",
		IsHost:   false,
	})
	require.NoError(t, err)

	room = getRoom(t, store, code)
	assert.Equal(t, "guest-conn-2", room.Guest.ConnID)
	assert.True(t, room.Guest.DisconnectedAt.IsZero())

	// 寬限期計時器觸發時看到連線已恢復，房間必須活下來
	time.Sleep(cfg.GracePeriod + 40*time.Millisecond)
	assert.True(t, roomExists(store, code))
}

func TestRejoinNameMismatchLeavesGraceRunning(t *testing.T) {
	cfg := testRoomConfig()
	svc, ft, store := newTestService(cfg)
	code := createJoinedRoom(t, svc)

	svc.HandleDisconnect(guestConn)

	_, _, err := svc.Rejoin("impostor-conn", models.RejoinPayload{
		RoomCode: code,
		UserName: "Bukan Bima",
		IsHost:   false,
	})
	assert.ErrorIs(t, err, ErrNameMismatch)

	// 名稱對不上就不接管連線，寬限期照常到期刪房並通知 host
	assert.Eventually(t, func() bool {
		return !roomExists(store, code)
	}, time.Second, 5*time.Millisecond)
	assert.True(t, ft.sentTo(hostConn, models.EventRoomClosed))
}

func TestRejoinUnknownRoom(t *testing.T) {
	svc, _, _ := newTestService(testRoomConfig())

	_, _, err := svc.Rejoin(guestConn, models.RejoinPayload{
		RoomCode: "ZZZZZZ",
		UserName: "Bima",
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRejoinResyncDuringGame(t *testing.T) {
	cfg := testRoomConfig()
	cfg.GracePeriod = time.Hour // 計時器不干擾本測試
	svc, _, _ := newTestService(cfg)
	code := createJoinedRoom(t, svc)
	startGame(t, svc, code)

	// guest 回答了 host 的第一題，回合換到 guest 發問
	svc.CardResponse(guestConn, models.CardResponsePayload{RoomCode: code, Liked: true})

	svc.HandleDisconnect(guestConn)
	summary, resync, err := svc.Rejoin("guest-conn-2", models.RejoinPayload{
		RoomCode: code,
		UserName: "Bima",
		IsHost:   false,
	})
	require.NoError(t, err)

	assert.True(t, summary.GameStarted)
	require.NotNil(t, resync)
	assert.True(t, resync.YourTurn)
	require.NotNil(t, resync.Card, "turn holder gets the current card on resync")
	assert.Equal(t, 2, resync.RoundNumber)
	assert.Equal(t, 16, resync.TotalRounds)
	assert.Equal(t, "Alya", resync.PartnerName)

	// 非換手方重連時拿不到卡片內容
	svc.HandleDisconnect(hostConn)
	_, resync, err = svc.Rejoin("host-conn-2", models.RejoinPayload{
		RoomCode: code,
		UserName: "Alya",
		IsHost:   true,
	})
	require.NoError(t, err)
	require.NotNil(t, resync)
	assert.False(t, resync.YourTurn)
	assert.Nil(t, resync.Card)
}

func TestRejoinBeforeStartHasNoResync(t *testing.T) {
	cfg := testRoomConfig()
	cfg.GracePeriod = time.Hour
	svc, _, _ := newTestService(cfg)
	code := createJoinedRoom(t, svc)

	svc.HandleDisconnect(guestConn)
	_, resync, err := svc.Rejoin("guest-conn-2", models.RejoinPayload{
		RoomCode: code,
		UserName: "Bima",
	})
	require.NoError(t, err)
	assert.Nil(t, resync, "lobby rejoin carries no game state")
}

func TestDisconnectAfterFinishDeletesRoomImmediately(t *testing.T) {
	svc, ft, store := newTestService(testRoomConfig())
	code := createJoinedRoom(t, svc)
	startGame(t, svc, code)

	for i := 0; i < 16; i++ {
		svc.CardResponse(hostConn, models.CardResponsePayload{RoomCode: code, Liked: true})
	}
	require.True(t, getRoom(t, store, code).Game.Finished())

	svc.HandleDisconnect(guestConn)

	// 結果頁斷線沒有寬限期，直接刪房並通知還在線的一方
	assert.False(t, roomExists(store, code))
	assert.True(t, ft.sentTo(hostConn, models.EventRoomClosed))
}

func TestSweepRemovesOnlyStaleRooms(t *testing.T) {
	cfg := testRoomConfig()
	svc, _, store := newTestService(cfg)
	lifecycle := NewLifecycleManager(store, &fakeTransport{}, cfg)

	staleCode := createJoinedRoom(t, svc)
	room := getRoom(t, store, staleCode)
	store.Lock()
	room.CreatedAt = time.Now().Add(-cfg.MaxRoomAge - time.Minute)
	store.Unlock()

	fresh, err := svc.CreateRoom("fresh-conn", models.CreateRoomPayload{
		RoomName: "Baru",
		UserName: "Citra",
		UserID:   "user-fresh",
	})
	require.NoError(t, err)

	lifecycle.Sweep(time.Now())

	assert.False(t, roomExists(store, staleCode))
	assert.True(t, roomExists(store, fresh.Code))
}
