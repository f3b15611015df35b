package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sentinel-bot/model"
)

// RedisConfig holds Redis connection settings for the pending store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis is the deployment Pending implementation. The record lives outside
// any single process, so any instance can consume it: SET NX provides the
// duplicate-delivery guard and GETDEL the atomic retrieve-and-delete.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (s *Redis) Create(ctx context.Context, key string, pending model.PendingSanction) error {
	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to encode pending sanction: %w", err)
	}
	created, err := s.client.SetNX(ctx, key, payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create pending sanction %s: %w", key, err)
	}
	if !created {
		return ErrAlreadyExists
	}
	return nil
}

func (s *Redis) Consume(ctx context.Context, key string) (model.PendingSanction, error) {
	raw, err := s.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return model.PendingSanction{}, ErrNotFound
	}
	if err != nil {
		return model.PendingSanction{}, fmt.Errorf("failed to consume pending sanction %s: %w", key, err)
	}
	var pending model.PendingSanction
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		return model.PendingSanction{}, fmt.Errorf("failed to decode pending sanction %s: %w", key, err)
	}
	return pending, nil
}

// Close closes the underlying Redis client.
func (s *Redis) Close() error {
	return s.client.Close()
}
