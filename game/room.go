package game

import (
	"strings"
	"sync"
	"time"

	"github.com/odounlami/mindsync-server/shared/logger"
)

type RoomStatus int

const (
	StatusLobby RoomStatus = iota
	StatusPlaying
	StatusWaiting
)

// RoomConfigs is fixed at process start and shared by every room.
type RoomConfigs struct {
	MinPlayers           int
	MaxPlayers           int
	MaxRounds            int
	JoinCountdownSeconds int
	RoundDuration        time.Duration
	InterRoundDelay      time.Duration

	// CountdownTick is the join-countdown granularity. It defaults to
	// one second and only tests shrink it.
	CountdownTick time.Duration
}

func (c RoomConfigs) withDefaults() RoomConfigs {
	if c.CountdownTick == 0 {
		c.CountdownTick = time.Second
	}
	return c
}

// Lobby is what a room needs from its registry: a way to remove itself
// once its roster empties.
type Lobby interface {
	RemoveRoom(roomId string)
}

// Room is one isolated game session. Every mutation happens under the
// locker, including the body of every timer callback, so the roster,
// submissions, status and timer handles are serialized per room.
type Room struct {
	id      string
	lobby   Lobby
	configs RoomConfigs
	pool    *WordPool

	locker      sync.Mutex
	status      RoomStatus
	players     []*playerState
	round       int
	currentWord string
	submissions map[string]string
	ending      bool
	destroyed   bool

	joinTimer      *countdown
	roundTimer     *time.Timer
	nextRoundTimer *time.Timer
}

func NewRoom(id string, lobby Lobby, configs RoomConfigs, words []string) *Room {
	return &Room{
		id:          id,
		lobby:       lobby,
		configs:     configs.withDefaults(),
		pool:        NewWordPool(words),
		status:      StatusLobby,
		submissions: make(map[string]string),
	}
}

// Join adds a player to the roster, or replaces the connection and name
// of a returning one. ErrRoomFull closes the new connection; ErrRoomClosed
// means the room was destroyed between lookup and join and the caller
// should retry on a fresh room.
func (r *Room) Join(playerId, name string, conn Conn) error {
	r.locker.Lock()

	if r.destroyed {
		r.locker.Unlock()
		return ErrRoomClosed
	}

	existing := r.findPlayerLocked(playerId)
	if existing == nil && len(r.players) >= r.configs.MaxPlayers {
		// Close flushes the socket and can block on a stalled peer,
		// so the rejection runs outside the room lock.
		r.locker.Unlock()
		conn.Send(makeRoomFullPacket())
		conn.Close("room-full")
		return ErrRoomFull
	}
	defer r.locker.Unlock()

	if existing != nil {
		existing.conn = conn
		existing.name = name
		logger.Infof("[Room %s] player %s reconnected as %q", r.id, playerId, name)
	} else {
		r.players = append(r.players, &playerState{id: playerId, name: name, conn: conn})
		logger.Infof("[Room %s] player %s (%q) joined, %d/%d", r.id, playerId, name, len(r.players), r.configs.MaxPlayers)
	}

	r.broadcastLocked(makePlayersPacket(r.players))

	switch r.status {
	case StatusPlaying:
		// round in progress, the newcomer sits out until the next one
		conn.Send(makeWaitingForPlayersPacket())
	case StatusWaiting:
		if len(r.players) >= r.configs.MinPlayers {
			r.status = StatusLobby
			r.broadcastLocked(makeNewPartyReadyPacket())
			r.startJoinCountdownLocked()
		} else {
			conn.Send(makeWaitingForPlayersPacket())
		}
	default:
		r.startJoinCountdownLocked()
	}
	return nil
}

// SubmitWord records a player's guess for the in-flight round. Late,
// duplicate and out-of-round submissions are no-ops, not errors.
func (r *Room) SubmitWord(playerId, word string) {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.status != StatusPlaying || r.ending {
		return
	}
	if r.findPlayerLocked(playerId) == nil {
		return
	}
	if _, already := r.submissions[playerId]; already {
		return
	}

	r.submissions[playerId] = strings.ToLower(strings.TrimSpace(word))

	if r.allSubmittedLocked() {
		logger.Debugf("[Room %s] all %d players answered, ending round early", r.id, len(r.players))
		r.endRoundLocked()
	}
}

// Leave removes a player, whether they asked to go or their connection
// dropped. The last player out destroys the room; dropping below the
// minimum parks it in waiting, wherever the game was.
func (r *Room) Leave(playerId string) {
	r.locker.Lock()
	defer r.locker.Unlock()

	leaving := r.findPlayerLocked(playerId)
	if leaving == nil {
		return
	}
	for i, p := range r.players {
		if p == leaving {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	logger.Infof("[Room %s] player %s left, %d remaining", r.id, playerId, len(r.players))

	if len(r.players) == 0 {
		r.cancelTimersLocked()
		r.destroyed = true
		r.lobby.RemoveRoom(r.id)
		return
	}

	r.broadcastLocked(makePlayersPacket(r.players))

	if len(r.players) < r.configs.MinPlayers && r.status != StatusWaiting {
		r.cancelTimersLocked()
		r.submissions = make(map[string]string)
		r.currentWord = ""
		r.ending = false
		r.status = StatusWaiting
		r.broadcastLocked(makeWaitingForPlayersPacket())
	}
}

func (r *Room) findPlayerLocked(playerId string) *playerState {
	for _, p := range r.players {
		if p.id == playerId {
			return p
		}
	}
	return nil
}

// allSubmittedLocked reports whether every current player has a
// non-empty answer in. Empty submissions count for scoring but never
// trigger an early round end.
func (r *Room) allSubmittedLocked() bool {
	if len(r.players) == 0 {
		return false
	}
	for _, p := range r.players {
		if word, ok := r.submissions[p.id]; !ok || word == "" {
			return false
		}
	}
	return true
}

// broadcastLocked is best effort: a closed or saturated connection
// drops the frame, it never fails the caller.
func (r *Room) broadcastLocked(data []byte) {
	if data == nil {
		return
	}
	for _, p := range r.players {
		if err := p.conn.Send(data); err != nil {
			logger.Debugf("[Room %s] dropped frame for %s: %v", r.id, p.id, err)
		}
	}
}
