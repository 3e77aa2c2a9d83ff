package game

import (
	"time"

	"github.com/odounlami/mindsync-server/shared/logger"
)

// matchedWordPoints is earned by every player whose non-empty word was
// also submitted by at least one other player this round.
const matchedWordPoints = 4

func (r *Room) startRoundLocked() {
	if len(r.players) < r.configs.MinPlayers {
		return
	}

	if r.joinTimer != nil {
		r.joinTimer.Stop()
		r.joinTimer = nil
	}

	r.round++
	r.submissions = make(map[string]string)
	r.ending = false
	r.status = StatusPlaying
	r.currentWord = r.pool.Draw()

	logger.Infof("[Room %s] round %d/%d started with word %q", r.id, r.round, r.configs.MaxRounds, r.currentWord)
	r.broadcastLocked(makeRoundStartPacket(r.round, r.currentWord, int(r.configs.RoundDuration/time.Second)))
	r.armRoundTimerLocked()
}

// endRoundLocked is idempotent: the ending flag absorbs the second of
// two racing triggers (timer expiry vs. the last submission).
func (r *Room) endRoundLocked() {
	if r.ending {
		return
	}
	r.ending = true

	if r.roundTimer != nil {
		r.roundTimer.Stop()
		r.roundTimer = nil
	}

	counts := make(map[string]int)
	for _, word := range r.submissions {
		if word != "" {
			counts[word]++
		}
	}

	results := make([]playerResult, 0, len(r.players))
	for _, p := range r.players {
		word := r.submissions[p.id]
		points := 0
		if word != "" && counts[word] >= 2 {
			points = matchedWordPoints
		}
		p.totalPoints += points
		results = append(results, playerResult{PlayerId: p.id, Word: word, Points: points})
	}
	r.broadcastLocked(makeRoundResultPacket(results))

	if r.round >= r.configs.MaxRounds || len(r.players) < r.configs.MinPlayers {
		r.finishGameLocked()
		return
	}
	r.scheduleNextRoundLocked()
}

// finishGameLocked broadcasts the final standings, then resets the room
// in place so the same room id can host the next game with whoever
// stayed.
func (r *Room) finishGameLocked() {
	finalScores := make([]playerScore, 0, len(r.players))
	for _, p := range r.players {
		finalScores = append(finalScores, playerScore{Id: p.id, Name: p.name, TotalPoints: p.totalPoints})
	}
	logger.Infof("[Room %s] game over after round %d", r.id, r.round)
	r.broadcastLocked(makeGameOverPacket(finalScores))

	r.resetLocked()
	r.broadcastLocked(makePlayersPacket(r.players))
	r.broadcastLocked(makeLobbyRestartPacket())
	if len(r.players) >= r.configs.MinPlayers {
		r.startJoinCountdownLocked()
	}
}

func (r *Room) resetLocked() {
	r.cancelTimersLocked()
	r.round = 0
	r.submissions = make(map[string]string)
	r.currentWord = ""
	r.ending = false
	r.status = StatusLobby
	r.pool.Reset()
	for _, p := range r.players {
		p.totalPoints = 0
	}
}
