package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
)

// Durable хранит сохраняемую часть сессии: токен API и подписанная запись пользователя.
// Обе записи пишутся и удаляются вместе.
type Durable struct {
	storage Storage
	codec   *UserCodec
	ttl     time.Duration

	mu      sync.Mutex
	onClear []func()
}

// NewDurable создаёт сохраняемую часть сессии поверх хранилища.
func NewDurable(storage Storage, codec *UserCodec, ttl time.Duration) *Durable {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Durable{storage: storage, codec: codec, ttl: ttl}
}

// Token возвращает сохранённый токен API.
func (d *Durable) Token(ctx context.Context) (string, error) {
	return d.storage.Get(ctx, TokenKey)
}

// Save сохраняет токен и пользователя.
func (d *Durable) Save(ctx context.Context, token string, user model.UserSummary) error {
	encoded, err := d.codec.Encode(user, d.ttl)
	if err != nil {
		return err
	}
	if err := d.storage.Set(ctx, TokenKey, token, d.ttl); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := d.storage.Set(ctx, UserKey, encoded, d.ttl); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// Load читает токен и пользователя. Если одной из записей нет, возвращает ErrNoValue;
// если запись пользователя повреждена или подделана, возвращает ErrInvalidUser.
func (d *Durable) Load(ctx context.Context) (string, *model.UserSummary, error) {
	token, err := d.storage.Get(ctx, TokenKey)
	if err != nil {
		return "", nil, err
	}
	raw, err := d.storage.Get(ctx, UserKey)
	if err != nil {
		return "", nil, err
	}
	if token == "" {
		return "", nil, ErrNoValue
	}

	user, err := d.codec.Decode(raw)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Clear удаляет обе записи и уведомляет подписчиков.
func (d *Durable) Clear(ctx context.Context) error {
	err := d.storage.Remove(ctx, TokenKey, UserKey)

	d.mu.Lock()
	hooks := append([]func(){}, d.onClear...)
	d.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	return err
}

// OnClear регистрирует функцию, вызываемую после каждой очистки.
func (d *Durable) OnClear(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onClear = append(d.onClear, fn)
}

func isMissing(err error) bool {
	return errors.Is(err, ErrNoValue)
}
