package game

import (
	"sync"

	"github.com/odounlami/mindsync-server/shared/logger"
)

// Registry maps room ids to live rooms. Rooms are created on first join
// and remove themselves once their roster empties.
type Registry struct {
	locker  sync.Mutex
	rooms   map[string]*Room
	configs RoomConfigs
	words   []string
}

func NewRegistry(configs RoomConfigs, words []string) *Registry {
	return &Registry{
		rooms:   make(map[string]*Room),
		configs: configs.withDefaults(),
		words:   words,
	}
}

func (reg *Registry) GetOrCreate(roomId string) *Room {
	reg.locker.Lock()
	defer reg.locker.Unlock()
	if room, ok := reg.rooms[roomId]; ok {
		return room
	}
	room := NewRoom(roomId, reg, reg.configs, reg.words)
	reg.rooms[roomId] = room
	logger.Infof("[Registry] room %s created", roomId)
	return room
}

func (reg *Registry) Lookup(roomId string) (*Room, bool) {
	reg.locker.Lock()
	defer reg.locker.Unlock()
	room, ok := reg.rooms[roomId]
	return room, ok
}

func (reg *Registry) RemoveRoom(roomId string) {
	reg.locker.Lock()
	defer reg.locker.Unlock()
	delete(reg.rooms, roomId)
	logger.Infof("[Registry] room %s removed", roomId)
}

// Join routes a join through getOrCreate. A room can empty out and
// destroy itself between the lookup and the join, so a closed room is
// retried on a fresh instance.
func (reg *Registry) Join(roomId, playerId, name string, conn Conn) error {
	for i := 0; i < 3; i++ {
		room := reg.GetOrCreate(roomId)
		err := room.Join(playerId, name, conn)
		if err != ErrRoomClosed {
			return err
		}
	}
	return ErrRoomClosed
}
