package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/odounlami/mindsync-server/config"
	"github.com/odounlami/mindsync-server/game"
	"github.com/odounlami/mindsync-server/shared/logger"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowCredentials: true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{
				"Content-Type",
				"Upgrade",
				"Connection",
				"Sec-WebSocket-Key",
				"Sec-WebSocket-Version",
				"Sec-WebSocket-Extensions",
				"Sec-WebSocket-Protocol",
			},
		}))
	}

	return r
}

func main() {
	cfg := config.Load()
	if cfg.Debug {
		logger.SetDebug()
	}

	words, err := game.LoadWords(cfg.WordsFile)
	if err != nil {
		logger.Fatalf("could not load word list from %s: %v", cfg.WordsFile, err)
	}
	logger.Infof("loaded %d words from %s", len(words), cfg.WordsFile)

	registry := game.NewRegistry(game.RoomConfigs{
		MinPlayers:           cfg.MinPlayers,
		MaxPlayers:           cfg.MaxPlayers,
		MaxRounds:            cfg.MaxRounds,
		JoinCountdownSeconds: cfg.JoinCountdownSeconds,
		RoundDuration:        cfg.RoundDuration,
		InterRoundDelay:      cfg.InterRoundDelay,
	}, words)

	r := CreateServer(cfg.AllowedOrigins)
	handler := game.NewHandler(registry)
	r.GET("/ws", handler.ServeWebsocket)
	r.GET("/rooms/create", handler.CreateRoomHandler)

	logger.Infof("mindsync server listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatalf("couldn't start server: %v", err)
	}
}
