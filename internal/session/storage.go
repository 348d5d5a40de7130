// Package session хранит сведения о вошедшем пользователе и его токен между запросами.
package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// Ключи долговременного хранилища.
const (
	TokenKey = "auth_token"
	UserKey  = "user"
)

// DefaultTTL задаёт срок жизни записей сессии.
const DefaultTTL = 7 * 24 * time.Hour

// ErrNoValue возвращается, если ключа нет в хранилище или срок его жизни истёк.
var ErrNoValue = errors.New("session: no value")

// Storage описывает долговременное хранилище ключ-значение со сроком жизни.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, keys ...string) error
}

// Backend привязывает хранилище к запросу конкретного браузера.
type Backend interface {
	Bind(w http.ResponseWriter, r *http.Request) Storage
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStorage хранит записи в памяти процесса.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStorage создаёт пустое хранилище в памяти.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", ErrNoValue
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return "", ErrNoValue
	}
	return e.value, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

func (m *MemoryStorage) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

// Len возвращает число живых записей.
func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	now := m.now()
	for _, e := range m.entries {
		if e.expiresAt.IsZero() || !now.After(e.expiresAt) {
			n++
		}
	}
	return n
}
