package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoom_JoinBroadcastsRoster(t *testing.T) {
	r := newTestRoom(testConfigs(), &MockLobby{})
	ann, bob := &fakeConn{}, &fakeConn{}

	require.NoError(t, r.Join("p1", "Ann", ann))
	require.NoError(t, r.Join("p2", "Bob", bob))

	assert.Equal(t, StatusLobby, roomStatus(r))

	roster := bob.lastOfType("players")
	require.NotNil(t, roster)
	players := roster["players"].([]any)
	require.Len(t, players, 2)
	first := players[0].(map[string]any)
	second := players[1].(map[string]any)
	assert.Equal(t, "p1", first["id"])
	assert.Equal(t, "Ann", first["name"])
	assert.Equal(t, "p2", second["id"])

	// Ann saw the roster twice, once per join
	assert.Equal(t, 2, ann.countOfType("players"))
}

func TestRoom_JoinStartsCountdownOnce(t *testing.T) {
	r := newTestRoom(testConfigs(), &MockLobby{})

	require.NoError(t, r.Join("p1", "Ann", &fakeConn{}))
	r.locker.Lock()
	first := r.joinTimer
	r.locker.Unlock()
	require.NotNil(t, first)

	require.NoError(t, r.Join("p2", "Bob", &fakeConn{}))
	r.locker.Lock()
	second := r.joinTimer
	r.locker.Unlock()
	assert.Same(t, first, second)
}

func TestRoom_RoomFullRejectsNewPlayer(t *testing.T) {
	configs := testConfigs()
	configs.MaxPlayers = 2
	r := newTestRoom(configs, &MockLobby{})

	require.NoError(t, r.Join("p1", "Ann", &fakeConn{}))
	require.NoError(t, r.Join("p2", "Bob", &fakeConn{}))

	late := &fakeConn{}
	err := r.Join("p3", "Eve", late)
	assert.ErrorIs(t, err, ErrRoomFull)
	assert.Equal(t, 1, late.countOfType("roomFull"))
	assert.True(t, late.isClosed())

	r.locker.Lock()
	defer r.locker.Unlock()
	assert.Len(t, r.players, 2)
}

// lockCheckConn observes whether the room lock is free when the room
// closes a rejected connection.
type lockCheckConn struct {
	fakeConn
	room        *Room
	lockWasFree bool
}

func (c *lockCheckConn) Close(reason string) {
	if c.room.locker.TryLock() {
		c.lockWasFree = true
		c.room.locker.Unlock()
	}
	c.fakeConn.Close(reason)
}

func TestRoom_RoomFullClosesOutsideRoomLock(t *testing.T) {
	configs := testConfigs()
	configs.MaxPlayers = 1
	r := newTestRoom(configs, &MockLobby{})
	require.NoError(t, r.Join("p1", "Ann", &fakeConn{}))

	// a blocking Close on the rejected socket must not stall the room
	late := &lockCheckConn{room: r}
	assert.ErrorIs(t, r.Join("p2", "Bob", late), ErrRoomFull)
	assert.Equal(t, 1, late.countOfType("roomFull"))
	assert.True(t, late.isClosed())
	assert.True(t, late.lockWasFree)
}

func TestRoom_ReconnectKeepsRosterEntryAndScore(t *testing.T) {
	r := newTestRoom(testConfigs(), &MockLobby{})
	ann, bob := &fakeConn{}, &fakeConn{}
	require.NoError(t, r.Join("p1", "Ann", ann))
	require.NoError(t, r.Join("p2", "Bob", bob))

	startRound(r)
	r.SubmitWord("p1", "chat")
	r.SubmitWord("p2", "chat")

	// matching words ended the round and scored both
	require.Equal(t, 1, ann.countOfType("roundResult"))

	ann2 := &fakeConn{}
	require.NoError(t, r.Join("p1", "Annie", ann2))

	r.locker.Lock()
	defer r.locker.Unlock()
	require.Len(t, r.players, 2)
	p1 := r.findPlayerLocked("p1")
	require.NotNil(t, p1)
	assert.Equal(t, "Annie", p1.name)
	assert.Equal(t, matchedWordPoints, p1.totalPoints)
	assert.Same(t, Conn(ann2), p1.conn)
}

func TestRoom_JoinDuringRoundWaitsForNext(t *testing.T) {
	r := newTestRoom(testConfigs(), &MockLobby{})
	require.NoError(t, r.Join("p1", "Ann", &fakeConn{}))
	require.NoError(t, r.Join("p2", "Bob", &fakeConn{}))
	startRound(r)

	carl := &fakeConn{}
	require.NoError(t, r.Join("p3", "Carl", carl))

	assert.Equal(t, 1, carl.countOfType("waitingForPlayers"))
	assert.Equal(t, 0, carl.countOfType("roundStart"))
}

func TestRoom_LeaveBelowMinParksRoomInWaiting(t *testing.T) {
	r := newTestRoom(testConfigs(), &MockLobby{})
	ann := &fakeConn{}
	require.NoError(t, r.Join("p1", "Ann", ann))
	require.NoError(t, r.Join("p2", "Bob", &fakeConn{}))
	startRound(r)
	r.SubmitWord("p1", "chat")

	r.Leave("p2")

	assert.Equal(t, StatusWaiting, roomStatus(r))
	assert.Equal(t, 1, ann.countOfType("waitingForPlayers"))
	assert.Equal(t, 0, ann.countOfType("roundResult"))

	r.locker.Lock()
	defer r.locker.Unlock()
	assert.Empty(t, r.submissions)
	assert.Equal(t, "", r.currentWord)
	assert.Nil(t, r.roundTimer)
	assert.Nil(t, r.joinTimer)
	assert.False(t, r.ending)
}

func TestRoom_LeaveAboveMinKeepsRoundRunning(t *testing.T) {
	configs := testConfigs()
	r := newTestRoom(configs, &MockLobby{})
	ann := &fakeConn{}
	require.NoError(t, r.Join("p1", "Ann", ann))
	require.NoError(t, r.Join("p2", "Bob", &fakeConn{}))
	require.NoError(t, r.Join("p3", "Carl", &fakeConn{}))
	startRound(r)

	r.Leave("p3")

	assert.Equal(t, StatusPlaying, roomStatus(r))
	assert.Equal(t, 0, ann.countOfType("waitingForPlayers"))
	r.locker.Lock()
	defer r.locker.Unlock()
	assert.NotNil(t, r.roundTimer)
}

func TestRoom_LastLeaveDestroysRoom(t *testing.T) {
	lobby := &MockLobby{}
	lobby.On("RemoveRoom", "r1").Return().Once()
	r := newTestRoom(testConfigs(), lobby)

	require.NoError(t, r.Join("p1", "Ann", &fakeConn{}))
	require.NoError(t, r.Join("p2", "Bob", &fakeConn{}))
	startRound(r)

	r.Leave("p1")
	r.Leave("p2")

	lobby.AssertExpectations(t)

	r.locker.Lock()
	assert.True(t, r.destroyed)
	assert.Nil(t, r.joinTimer)
	assert.Nil(t, r.roundTimer)
	assert.Nil(t, r.nextRoundTimer)
	r.locker.Unlock()

	err := r.Join("p3", "Eve", &fakeConn{})
	assert.ErrorIs(t, err, ErrRoomClosed)
}

func TestRoom_JoinResumesWaitingRoom(t *testing.T) {
	r := newTestRoom(testConfigs(), &MockLobby{})
	ann := &fakeConn{}
	require.NoError(t, r.Join("p1", "Ann", ann))
	require.NoError(t, r.Join("p2", "Bob", &fakeConn{}))
	r.Leave("p2")
	require.Equal(t, StatusWaiting, roomStatus(r))

	carl := &fakeConn{}
	require.NoError(t, r.Join("p3", "Carl", carl))

	assert.Equal(t, StatusLobby, roomStatus(r))
	assert.Equal(t, 1, ann.countOfType("newPartyReady"))
	assert.Equal(t, 1, carl.countOfType("newPartyReady"))
	r.locker.Lock()
	assert.NotNil(t, r.joinTimer)
	r.locker.Unlock()
}

func TestRoom_JoinWaitingRoomBelowMinKeepsWaiting(t *testing.T) {
	configs := testConfigs()
	configs.MinPlayers = 3
	r := newTestRoom(configs, &MockLobby{})
	require.NoError(t, r.Join("p1", "Ann", &fakeConn{}))
	require.NoError(t, r.Join("p2", "Bob", &fakeConn{}))
	require.NoError(t, r.Join("p3", "Carl", &fakeConn{}))
	r.Leave("p3")
	require.Equal(t, StatusWaiting, roomStatus(r))
	r.Leave("p2")

	dana := &fakeConn{}
	require.NoError(t, r.Join("p4", "Dana", dana))

	assert.Equal(t, StatusWaiting, roomStatus(r))
	assert.Equal(t, 1, dana.countOfType("waitingForPlayers"))
	r.locker.Lock()
	assert.Nil(t, r.joinTimer)
	r.locker.Unlock()
}
