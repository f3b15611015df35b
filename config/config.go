package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"sentinel-bot/model"
	"sentinel-bot/store"
)

// Load reads the configuration from the environment, with a .env file taken
// into account when present.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("MODLOG_DB_PATH", "./data/modlog.db")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("PENDING_TTL", store.DefaultTTL)
	v.SetDefault("MUTE_DURATION", time.Hour)

	token := v.GetString("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	appID := v.GetString("APP_ID")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	logChannelID := v.GetString("LOG_CHANNEL_ID")
	if logChannelID == "" {
		log.Println("Warning: LOG_CHANNEL_ID not set, system logging will be disabled")
	}

	if v.GetString("REDIS_ADDR") == "" {
		log.Println("Warning: REDIS_ADDR not set, pending sanctions will be kept in memory and will not survive restarts")
	}

	pendingTTL := v.GetDuration("PENDING_TTL")
	if pendingTTL <= 0 || pendingTTL > store.DefaultTTL {
		// Pending sanctions must not outlive the interaction validity window.
		log.Printf("Warning: invalid PENDING_TTL, using default of %s", store.DefaultTTL)
		pendingTTL = store.DefaultTTL
	}

	return &model.Config{
		BotToken:      token,
		AppID:         appID,
		LogChannelID:  logChannelID,
		ModlogDBPath:  v.GetString("MODLOG_DB_PATH"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		PendingTTL:    pendingTTL,
		MuteDuration:  v.GetDuration("MUTE_DURATION"),
	}, nil
}
