package game

import (
	"sync"
	"time"

	"github.com/odounlami/mindsync-server/shared/logger"
)

// Three timer kinds drive a room: the recurring join countdown, the
// single-shot round timer and the single-shot inter-round delay. Each
// handle lives on the Room and every callback re-checks, under the room
// lock, that its handle is still the current one. Cancellation swaps
// the handle out, so a stopped timer that already fired can never touch
// the room again.

type countdown struct {
	stop chan struct{}
	once sync.Once
}

func (c *countdown) Stop() {
	c.once.Do(func() { close(c.stop) })
}

func (r *Room) startJoinCountdownLocked() {
	if r.joinTimer != nil {
		return
	}
	cd := &countdown{stop: make(chan struct{})}
	r.joinTimer = cd
	go r.runJoinCountdown(cd, r.configs.JoinCountdownSeconds)
}

func (r *Room) runJoinCountdown(cd *countdown, timeLeft int) {
	ticker := time.NewTicker(r.configs.CountdownTick)
	defer ticker.Stop()

	for {
		select {
		case <-cd.stop:
			return
		case <-ticker.C:
			r.locker.Lock()
			if r.joinTimer != cd {
				r.locker.Unlock()
				return
			}
			r.broadcastLocked(makeJoinCountdownPacket(timeLeft))
			if timeLeft <= 0 {
				r.joinTimer = nil
				if len(r.players) >= r.configs.MinPlayers {
					r.startRoundLocked()
				} else {
					logger.Infof("[Room %s] countdown expired with %d players, restarting", r.id, len(r.players))
					r.startJoinCountdownLocked()
				}
				r.locker.Unlock()
				return
			}
			timeLeft--
			r.locker.Unlock()
		}
	}
}

func (r *Room) armRoundTimerLocked() {
	var t *time.Timer
	t = time.AfterFunc(r.configs.RoundDuration, func() {
		r.locker.Lock()
		defer r.locker.Unlock()
		if r.roundTimer != t {
			return
		}
		r.roundTimer = nil
		logger.Debugf("[Room %s] round %d timer expired", r.id, r.round)
		r.endRoundLocked()
	})
	r.roundTimer = t
}

func (r *Room) scheduleNextRoundLocked() {
	var t *time.Timer
	t = time.AfterFunc(r.configs.InterRoundDelay, func() {
		r.locker.Lock()
		defer r.locker.Unlock()
		if r.nextRoundTimer != t {
			return
		}
		r.nextRoundTimer = nil
		r.startRoundLocked()
	})
	r.nextRoundTimer = t
}

func (r *Room) cancelTimersLocked() {
	if r.joinTimer != nil {
		r.joinTimer.Stop()
		r.joinTimer = nil
	}
	if r.roundTimer != nil {
		r.roundTimer.Stop()
		r.roundTimer = nil
	}
	if r.nextRoundTimer != nil {
		r.nextRoundTimer.Stop()
		r.nextRoundTimer = nil
	}
}
