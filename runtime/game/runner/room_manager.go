package runner

import (
	"fmt"
	"sync"
	"time"

	"mjx/common/log"
)

// Room 一张正在进行的桌子
type Room struct {
	ID        string
	Index     int // 第几场
	Seed      uint64
	Agents    [4]string
	StartedAt time.Time
}

// RoomManager 记录所有进行中的对局，供进度日志使用
type RoomManager struct {
	rooms    map[string]*Room
	finished int
	failed   int
	mu       sync.RWMutex
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[string]*Room)}
}

// CreateRoom 登记一张新桌子
func (rm *RoomManager) CreateRoom(room *Room) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, exists := rm.rooms[room.ID]; exists {
		return fmt.Errorf("房间 %s 已存在", room.ID)
	}
	rm.rooms[room.ID] = room
	log.Debug("RoomManager 创建房间 %s，第 %d 场 seed=%d", room.ID, room.Index, room.Seed)
	return nil
}

func (rm *RoomManager) GetRoom(roomID string) (*Room, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	room, exists := rm.rooms[roomID]
	return room, exists
}

// DeleteRoom 对局结束或失败后移除
func (rm *RoomManager) DeleteRoom(roomID string, failed bool) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, exists := rm.rooms[roomID]
	if !exists {
		return fmt.Errorf("房间 %s 不存在", roomID)
	}
	delete(rm.rooms, roomID)
	if failed {
		rm.failed++
	} else {
		rm.finished++
	}
	log.Debug("RoomManager 删除房间 %s，耗时 %s", roomID, time.Since(room.StartedAt))
	return nil
}

// GetStats 进行中、已完成、失败的对局数
func (rm *RoomManager) GetStats() (active, finished, failed int) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms), rm.finished, rm.failed
}

// GetAllRooms 返回副本
func (rm *RoomManager) GetAllRooms() []*Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	rooms := make([]*Room, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}
