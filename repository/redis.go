package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/redis/go-redis/v9"
)

const (
	cooldownKeyPrefix = "ejk:cooldown:"
	sessionKeyPrefix  = "ejk:booking:"
)

// NewRedisClient connects and pings
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	utils.Logger.Info().Str("addr", addr).Msg("connected to Redis")
	return client, nil
}

// RedisCooldownStore cooldown windows as expiring keys, shared by every instance
type RedisCooldownStore struct {
	client *redis.Client
}

func NewRedisCooldownStore(client *redis.Client) *RedisCooldownStore {
	return &RedisCooldownStore{client: client}
}

func (s *RedisCooldownStore) Start(ctx context.Context, key string, d time.Duration) error {
	if err := s.client.Set(ctx, cooldownKeyPrefix+key, 1, d).Err(); err != nil {
		return fmt.Errorf("start cooldown: %w", err)
	}
	return nil
}

func (s *RedisCooldownStore) Remaining(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := s.client.PTTL(ctx, cooldownKeyPrefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("read cooldown: %w", err)
	}
	// -2 missing key, -1 no expiry
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// RedisSessionStore booking sessions as JSON values with a TTL
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Load(ctx context.Context, id string) (*models.BookingSession, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking session: %w", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode booking session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.BookingSession, ttl time.Duration) error {
	if ttl > 0 {
		session.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode booking session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("save booking session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("delete booking session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
