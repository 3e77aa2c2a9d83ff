package game

import (
	"encoding/json"

	"github.com/odounlami/mindsync-server/shared/logger"
)

// clientMessage is the envelope for every inbound frame. Unknown or
// malformed frames are dropped by the read pump.
type clientMessage struct {
	Type     string `json:"type"`
	RoomId   string `json:"roomId,omitempty"`
	PlayerId string `json:"playerId,omitempty"`
	Name     string `json:"name,omitempty"`
	Word     string `json:"word,omitempty"`
}

const (
	msgJoin  = "join"
	msgWord  = "word"
	msgLeave = "leave"
)

type playerInfo struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type playerResult struct {
	PlayerId string `json:"playerId"`
	Word     string `json:"word"`
	Points   int    `json:"points"`
}

type playerScore struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
}

func marshalPacket(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Criticalf("failed to marshal packet %T: %v", v, err)
		return nil
	}
	return data
}

// Outbound packets are marshaled once and the same bytes are handed to
// every recipient.

func makePlayersPacket(players []*playerState) []byte {
	infos := make([]playerInfo, 0, len(players))
	for _, p := range players {
		infos = append(infos, playerInfo{Id: p.id, Name: p.name})
	}
	return marshalPacket(struct {
		Type    string       `json:"type"`
		Players []playerInfo `json:"players"`
	}{Type: "players", Players: infos})
}

func makeJoinCountdownPacket(timeLeft int) []byte {
	return marshalPacket(struct {
		Type     string `json:"type"`
		TimeLeft int    `json:"timeLeft"`
	}{Type: "joinCountdown", TimeLeft: timeLeft})
}

func makeRoundStartPacket(round int, word string, durationSeconds int) []byte {
	return marshalPacket(struct {
		Type        string `json:"type"`
		Round       int    `json:"round"`
		CurrentWord string `json:"currentWord"`
		Duration    int    `json:"duration"`
	}{Type: "roundStart", Round: round, CurrentWord: word, Duration: durationSeconds})
}

func makeRoundResultPacket(results []playerResult) []byte {
	return marshalPacket(struct {
		Type    string         `json:"type"`
		Results []playerResult `json:"results"`
	}{Type: "roundResult", Results: results})
}

func makeGameOverPacket(finalScores []playerScore) []byte {
	return marshalPacket(struct {
		Type        string        `json:"type"`
		FinalScores []playerScore `json:"finalScores"`
	}{Type: "gameOver", FinalScores: finalScores})
}

func makeRoomFullPacket() []byte {
	return marshalPacket(struct {
		Type string `json:"type"`
	}{Type: "roomFull"})
}

func makeWaitingForPlayersPacket() []byte {
	return marshalPacket(struct {
		Type string `json:"type"`
	}{Type: "waitingForPlayers"})
}

func makeNewPartyReadyPacket() []byte {
	return marshalPacket(struct {
		Type string `json:"type"`
	}{Type: "newPartyReady"})
}

func makeLobbyRestartPacket() []byte {
	return marshalPacket(struct {
		Type string `json:"type"`
	}{Type: "lobbyRestart"})
}
