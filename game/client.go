package game

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/odounlami/mindsync-server/shared/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = time.Minute
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// client wraps one websocket connection. Send only queues; the write
// pump drains the queue, and writeMu keeps pump and Close from writing
// to the socket at the same time.
type client struct {
	socket    *websocket.Conn
	sendChan  chan []byte
	done      chan struct{}
	closeOnce sync.Once
	writeMu   sync.Mutex
	limiter   *rate.Limiter
}

func newClient(socket *websocket.Conn) *client {
	socket.SetReadDeadline(time.Now().Add(pongWait))
	socket.SetPongHandler(func(string) error {
		socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	return &client{
		socket:   socket,
		sendChan: make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
		limiter:  rate.NewLimiter(rate.Limit(10), 20),
	}
}

func (c *client) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}
	select {
	case c.sendChan <- data:
		return nil
	default:
		return ErrSlowConsumer
	}
}

func (c *client) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.socket.SetWriteDeadline(time.Now().Add(writeWait))
	return c.socket.WriteMessage(messageType, data)
}

// Close flushes whatever is still queued (so a roomFull notice reaches
// the client before the close frame), then tears the socket down.
func (c *client) Close(reason string) {
	c.closeOnce.Do(func() {
		close(c.done)
	flush:
		for {
			select {
			case data := <-c.sendChan:
				if err := c.write(websocket.TextMessage, data); err != nil {
					break flush
				}
			default:
				break flush
			}
		}
		c.socket.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
			time.Now().Add(writeWait),
		)
		c.socket.Close()
	})
}

func (c *client) WritePump() {
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case data := <-c.sendChan:
			if err := c.write(websocket.TextMessage, data); err != nil {
				c.Close("write-failed")
				return
			}
		case <-pingTicker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.Close("ping-failed")
				return
			}
		case <-c.done:
			return
		}
	}
}

// ReadPump parses inbound frames and routes them to the addressed room.
// Malformed frames and frames over the rate limit are dropped without
// killing the connection. A closed socket counts as a leave.
func (c *client) ReadPump(registry *Registry) {
	defer c.Close("")

	var roomId, playerId string
	leave := func() {
		if roomId == "" {
			return
		}
		if room, ok := registry.Lookup(roomId); ok {
			room.Leave(playerId)
		}
		roomId, playerId = "", ""
	}
	defer func() { leave() }()

	for {
		_, raw, err := c.socket.ReadMessage()
		if err != nil {
			return
		}
		if !c.limiter.Allow() {
			logger.Debugf("rate limited frame from player %s", playerId)
			continue
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case msgJoin:
			if msg.RoomId == "" {
				continue
			}
			roomId = msg.RoomId
			playerId = msg.PlayerId
			if playerId == "" {
				playerId = uuid.NewString()
			}
			if err := registry.Join(roomId, playerId, msg.Name, c); err != nil {
				roomId, playerId = "", ""
			}
		case msgWord:
			if roomId == "" {
				continue
			}
			if room, ok := registry.Lookup(roomId); ok {
				room.SubmitWord(playerId, msg.Word)
			}
		case msgLeave:
			leave()
		}
	}
}
