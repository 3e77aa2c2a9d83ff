package game

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/odounlami/mindsync-server/shared/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// origins are filtered by the CORS layer in front
		return true
	},
}

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) ServeWebsocket(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Warningf("websocket upgrade failed for %s: %v", ctx.ClientIP(), err)
		return
	}

	c := newClient(conn)
	go c.WritePump()
	go c.ReadPump(h.registry)
}

// CreateRoomHandler mints a fresh room id. The room itself only comes
// to life when the first join addresses it.
func (h *Handler) CreateRoomHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"roomId": uuid.NewString()})
}
