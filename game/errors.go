package game

import "errors"

var (
	ErrRoomFull     = errors.New("room full")
	ErrRoomClosed   = errors.New("room closed")
	ErrConnClosed   = errors.New("connection closed")
	ErrSlowConsumer = errors.New("outbound buffer full")
)
