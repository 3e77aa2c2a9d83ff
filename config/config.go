package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup; nothing here changes at runtime.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Debug          bool

	MinPlayers           int
	MaxPlayers           int
	MaxRounds            int
	JoinCountdownSeconds int
	RoundDuration        time.Duration
	InterRoundDelay      time.Duration

	WordsFile string
}

func Load() Config {
	// .env is optional, real env vars win either way
	godotenv.Load()

	return Config{
		Addr:           getEnv("ADDR", ":8080"),
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		Debug:          os.Getenv("DEBUG") == "true",

		MinPlayers:           getIntEnv("MIN_PLAYERS", 2),
		MaxPlayers:           getIntEnv("MAX_PLAYERS", 4),
		MaxRounds:            getIntEnv("MAX_ROUNDS", 5),
		JoinCountdownSeconds: getIntEnv("JOIN_COUNTDOWN_SECONDS", 30),
		RoundDuration:        time.Duration(getIntEnv("ROUND_SECONDS", 15)) * time.Second,
		InterRoundDelay:      time.Duration(getIntEnv("INTER_ROUND_SECONDS", 3)) * time.Second,

		WordsFile: getEnv("WORDS_FILE", "./words.txt"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
