package service

import (
	"log"
	"math"

	"duduk_sebentar/internal/models"
)

// GameService 推進遊戲狀態：發卡、輪替回合、記錄回答、計算結果。
// 所有方法都假設呼叫端已持有 store 的鎖並完成前置檢查。
type GameService struct {
	ws Transport
}

func NewGameService(ws Transport) *GameService {
	return &GameService{ws: ws}
}

// Start 開始遊戲。前置條件：房間已有 guest 且遊戲尚未開始。
// 第一回合由 host 發問，卡片只發給持有回合的一方。
func (g *GameService) Start(room *models.Room) {
	room.Game.Started = true
	room.Game.CurrentTurn = models.RoleHost

	firstCard := &room.Game.Cards[0]

	g.ws.Send(room.Host.ConnID, models.NewServerEvent(models.EventGameStart, &models.TurnPayload{
		YourTurn:    true,
		Card:        firstCard,
		PartnerName: room.Guest.Name,
		RoundNumber: 1,
		TotalRounds: room.Game.TotalRounds,
	}))
	g.ws.Send(room.Guest.ConnID, models.NewServerEvent(models.EventGameStart, &models.TurnPayload{
		YourTurn:    false,
		Card:        nil,
		PartnerName: room.Host.Name,
		RoundNumber: 1,
		TotalRounds: room.Game.TotalRounds,
	}))

	log.Printf("game started in room %s", room.Code)
}

// RecordResponse 記錄一筆回答並推進回合。
// 送出回答的一方是 responder，另一方是 asker。
// 讀不出參與者時直接忽略事件，不動共用狀態。
func (g *GameService) RecordResponse(room *models.Room, connID string, liked bool) {
	if !room.Game.Started || room.Game.Finished() {
		return
	}

	responder, role := room.ParticipantByConn(connID)
	if responder == nil {
		log.Printf("card response from unknown connection in room %s", room.Code)
		return
	}
	asker := room.Participant(role.Other())
	if asker == nil {
		return
	}

	card := room.Game.Cards[room.Game.CurrentCardIndex]
	room.Game.Responses = append(room.Game.Responses, models.CardResponse{
		CardID:    card.ID,
		Question:  card.Question,
		Asker:     asker.Name,
		Responder: responder.Name,
		Liked:     liked,
	})
	room.Game.CurrentCardIndex++

	if room.Game.Finished() {
		result := CalculateCompatibility(room.Game.Responses)
		payload := models.NewServerEvent(models.EventGameOver, &models.GameOverPayload{
			Result:    result,
			Responses: room.Game.Responses,
			HostName:  room.Host.Name,
			GuestName: room.Guest.Name,
		})
		g.ws.Send(room.Host.ConnID, payload)
		g.ws.Send(room.Guest.ConnID, payload)

		// 房間留在 store 裡（結果畫面還要用），
		// 等斷線或 play-again 再刪
		log.Printf("game over in room %s: %d%% compatibility", room.Code, result.Percentage)
		return
	}

	room.Game.CurrentTurn = room.Game.CurrentTurn.Other()
	nextCard := &room.Game.Cards[room.Game.CurrentCardIndex]
	roundNumber := room.Game.CurrentCardIndex + 1
	hostTurn := room.Game.CurrentTurn == models.RoleHost
	lastResponse := liked

	hostCard := nextCard
	guestCard := nextCard
	if hostTurn {
		guestCard = nil
	} else {
		hostCard = nil
	}

	g.ws.Send(room.Host.ConnID, models.NewServerEvent(models.EventNextTurn, &models.TurnPayload{
		YourTurn:     hostTurn,
		Card:         hostCard,
		RoundNumber:  roundNumber,
		TotalRounds:  room.Game.TotalRounds,
		LastResponse: &lastResponse,
	}))
	g.ws.Send(room.Guest.ConnID, models.NewServerEvent(models.EventNextTurn, &models.TurnPayload{
		YourTurn:     !hostTurn,
		Card:         guestCard,
		RoundNumber:  roundNumber,
		TotalRounds:  room.Game.TotalRounds,
		LastResponse: &lastResponse,
	}))
}

// CalculateCompatibility 依「喜歡」的比例計算契合度與對應的評語區間
func CalculateCompatibility(responses []models.CardResponse) models.CompatibilityResult {
	totalQuestions := len(responses)
	totalLikes := 0
	for _, r := range responses {
		if r.Liked {
			totalLikes++
		}
	}
	totalDislikes := totalQuestions - totalLikes
	percentage := int(math.Round(float64(totalLikes) / float64(totalQuestions) * 100))

	var message, emoji string
	switch {
	case percentage >= 80:
		message = "Wah, kalian super cocok! Chemistry-nya kuat banget! 🔥"
		emoji = "💕"
	case percentage >= 60:
		message = "Cocok nih! Ada banyak kesamaan yang bisa dijelajahi lebih lanjut."
		emoji = "✨"
	case percentage >= 40:
		message = "Lumayan cocok! Perbedaan kadang bikin hubungan lebih menarik."
		emoji = "🌱"
	case percentage >= 20:
		message = "Hmm, agak beda sih, tapi siapa tau bisa saling melengkapi?"
		emoji = "🤔"
	default:
		message = "Sepertinya kalian punya perspektif yang sangat berbeda. Tapi itu ga masalah!"
		emoji = "🌈"
	}

	return models.CompatibilityResult{
		Percentage:     percentage,
		Message:        message,
		Emoji:          emoji,
		TotalLikes:     totalLikes,
		TotalDislikes:  totalDislikes,
		TotalQuestions: totalQuestions,
	}
}
