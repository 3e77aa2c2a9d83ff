package game

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- Lobby ---

type MockLobby struct {
	mock.Mock
}

func (m *MockLobby) RemoveRoom(roomId string) {
	m.Called(roomId)
}

// --- Conn ---

// fakeConn records every frame it was sent, decoded, so tests can
// assert on broadcast contents per player.
type fakeConn struct {
	mu          sync.Mutex
	frames      []map[string]any
	closed      bool
	closeReason string
}

func (f *fakeConn) Send(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var frame map[string]any
	if err := json.Unmarshal(data, &frame); err != nil {
		return err
	}
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeConn) Close(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.closeReason = reason
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeConn) framesOfType(frameType string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []map[string]any
	for _, frame := range f.frames {
		if frame["type"] == frameType {
			out = append(out, frame)
		}
	}
	return out
}

func (f *fakeConn) countOfType(frameType string) int {
	return len(f.framesOfType(frameType))
}

func (f *fakeConn) lastOfType(frameType string) map[string]any {
	frames := f.framesOfType(frameType)
	if len(frames) == 0 {
		return nil
	}
	return frames[len(frames)-1]
}

// asInt helps with json numbers decoding to float64.
func asInt(v any) int {
	f, _ := v.(float64)
	return int(f)
}

var testWords = []string{"chien", "chat", "maison", "voiture", "arbre"}

// testConfigs parks every timer on an hour so nothing fires unless a
// test drives it explicitly.
func testConfigs() RoomConfigs {
	return RoomConfigs{
		MinPlayers:           2,
		MaxPlayers:           4,
		MaxRounds:            5,
		JoinCountdownSeconds: 30,
		RoundDuration:        time.Hour,
		InterRoundDelay:      time.Hour,
		CountdownTick:        time.Hour,
	}
}

func newTestRoom(configs RoomConfigs, lobby Lobby) *Room {
	return NewRoom("r1", lobby, configs, testWords)
}

// Drive the state machine the way a timer callback would.

func startRound(r *Room) {
	r.locker.Lock()
	r.startRoundLocked()
	r.locker.Unlock()
}

func endRound(r *Room) {
	r.locker.Lock()
	r.endRoundLocked()
	r.locker.Unlock()
}

func roomStatus(r *Room) RoomStatus {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.status
}

func roomRound(r *Room) int {
	r.locker.Lock()
	defer r.locker.Unlock()
	return r.round
}
