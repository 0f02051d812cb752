package models

// QuestionCard 一張問題卡
type QuestionCard struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Category string `json:"category"`
}
