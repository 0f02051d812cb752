package storage

import (
	"sync"

	"duduk_sebentar/internal/models"
)

// RoomStore 是所有存活房間的唯一真實來源（code -> Room）。
//
// 內嵌的 Mutex 由呼叫端在「整個」事件處理或計時器回呼期間持有，
// 讓檢查與行動落在同一個臨界區；其餘方法都假設鎖已被持有，
// 自己不再加鎖。
type RoomStore struct {
	sync.Mutex
	rooms map[string]*models.Room
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*models.Room),
	}
}

// Get 依房間代碼查詢
func (s *RoomStore) Get(code string) (*models.Room, bool) {
	room, ok := s.rooms[code]
	return room, ok
}

// Put 寫入房間
func (s *RoomStore) Put(room *models.Room) {
	s.rooms[room.Code] = room
}

// Delete 移除房間
func (s *RoomStore) Delete(code string) {
	delete(s.rooms, code)
}

// Exists 回報代碼是否已被存活房間占用
func (s *RoomStore) Exists(code string) bool {
	_, ok := s.rooms[code]
	return ok
}

// Len 回報存活房間數
func (s *RoomStore) Len() int {
	return len(s.rooms)
}

// All 回傳房間快照，讓呼叫端能邊走訪邊刪除
func (s *RoomStore) All() []*models.Room {
	rooms := make([]*models.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}
