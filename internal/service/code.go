package service

import (
	"errors"
	"log"
	"math/rand"
	"strings"

	"duduk_sebentar/internal/storage"
)

// 排除容易誤讀的 I、O、0、1
const (
	codeAlphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength     = 6
	maxCodeRetries = 100
)

// ErrCodeSpaceExhausted 代表代碼空間暫時飽和。
// 這是給營運看的容量警訊，不是一般的使用者錯誤。
var ErrCodeSpaceExhausted = errors.New("failed to allocate unique room code")

// CodeAllocator 產生在當前存活房間之間唯一的房間代碼
type CodeAllocator struct {
	store *storage.RoomStore
	intn  func(n int) int // 可替換的亂數來源，測試用
}

func NewCodeAllocator(store *storage.RoomStore) *CodeAllocator {
	return &CodeAllocator{
		store: store,
		intn:  rand.Intn,
	}
}

// Allocate 產生一組唯一代碼。呼叫端須持有 store 的鎖。
// 每次嘗試都重新對照 store 裡的存活房間，不用快照；
// 連續 100 次碰撞視為代碼空間飽和。
func (a *CodeAllocator) Allocate() (string, error) {
	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		code := a.generate()
		if !a.store.Exists(code) {
			return code, nil
		}
	}

	log.Printf("room code allocation failed after %d attempts, active rooms: %d",
		maxCodeRetries, a.store.Len())
	return "", ErrCodeSpaceExhausted
}

func (a *CodeAllocator) generate() string {
	var builder strings.Builder
	builder.Grow(codeLength)

	for i := 0; i < codeLength; i++ {
		builder.WriteByte(codeAlphabet[a.intn(len(codeAlphabet))])
	}

	return builder.String()
}
