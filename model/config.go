package model

import "time"

// Config holds the bot's static configuration, loaded from the environment
// at startup. Per-guild moderation policy lives in the database, not here.
type Config struct {
	BotToken     string
	AppID        string
	LogChannelID string

	ModlogDBPath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PendingTTL   time.Duration
	MuteDuration time.Duration
}
