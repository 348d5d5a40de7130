package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	browserCookieName = "laundry_sid"
	redisKeyPrefix    = "laundry:session:"
)

// RedisBackend хранит сессию в Redis, а браузеру выдаёт только случайный идентификатор.
type RedisBackend struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewRedisBackend создаёт backend поверх клиента Redis.
func NewRedisBackend(client *redis.Client, ttl time.Duration, secure bool) *RedisBackend {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisBackend{client: client, ttl: ttl, secure: secure}
}

// Bind находит идентификатор браузера в cookie или выдаёт новый.
func (b *RedisBackend) Bind(w http.ResponseWriter, r *http.Request) Storage {
	sid := ""
	if cookie, err := r.Cookie(browserCookieName); err == nil {
		if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			sid = cookie.Value
		}
	}

	if sid == "" {
		sid = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     browserCookieName,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			Secure:   b.secure,
			SameSite: http.SameSiteLaxMode,
			Expires:  time.Now().Add(b.ttl),
			MaxAge:   int(b.ttl.Seconds()),
		})
	}

	return NewRedisStorage(b.client, sid)
}

// RedisStorage хранит записи одного браузера под общим префиксом ключей.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage создаёт хранилище для идентификатора браузера sid.
func NewRedisStorage(client *redis.Client, sid string) *RedisStorage {
	return &RedisStorage{
		client: client,
		prefix: redisKeyPrefix + sid + ":",
	}
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoValue
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, s.prefix+k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
