package game

// Conn is the outbound side of a player's connection. The room only
// addresses broadcasts through it; the transport owns its lifetime.
// Send must never block the room: implementations drop the frame when
// the connection is gone or saturated.
type Conn interface {
	Send(data []byte) error
	Close(reason string)
}

// playerState is a roster entry. The id is supplied by the client and
// stable across reconnects; the conn is replaced on reconnect, never
// duplicated.
type playerState struct {
	id          string
	name        string
	totalPoints int
	conn        Conn
}
