package main

import (
	"log"
	"os"
	"path/filepath"

	"sentinel-bot/bot"
	"sentinel-bot/config"
	"sentinel-bot/handlers"
	"sentinel-bot/store"
	"sentinel-bot/utils/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.ModlogDBPath), os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	db, err := database.Open(cfg.ModlogDBPath)
	if err != nil {
		log.Fatalf("Error initializing moderation database: %v", err)
	}
	defer db.Close()

	var pending store.Pending
	if cfg.RedisAddr != "" {
		redisStore, err := store.NewRedis(store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.PendingTTL,
		})
		if err != nil {
			log.Fatalf("Error connecting to redis: %v", err)
		}
		defer redisStore.Close()
		pending = redisStore
	} else {
		pending = store.NewMemory(cfg.PendingTTL)
	}

	b, err := bot.New(cfg, db, pending)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	defer b.Close()

	handlers.Register(b)

	b.Run()
}
