package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
)

// Authenticator выполняет вход и выход на стороне API.
type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error)
	Logout(ctx context.Context) error
}

// State содержит снимок сессии.
type State struct {
	User  *model.UserSummary
	Token string
}

// IsAuthenticated истинно тогда и только тогда, когда известны и пользователь, и токен.
func (s State) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// Role возвращает роль пользователя или пустую строку.
func (s State) Role() model.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Store служит единственным источником сведений о том, кто вошёл и с какими правами.
// Записывать долговременное хранилище могут только Login, Logout и InitializeAuth.
type Store struct {
	durable *Durable
	auth    Authenticator
	logger  *zap.Logger

	mu    sync.RWMutex
	user  *model.UserSummary
	token string
}

// NewStore создаёт пустую сессию.
func NewStore(durable *Durable, auth Authenticator, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		durable: durable,
		auth:    auth,
		logger:  logger,
	}
	durable.OnClear(s.reset)
	return s
}

// State возвращает текущий снимок сессии.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{User: s.user, Token: s.token}
}

// Login отправляет учётные данные в API. При успехе сохраняет токен и пользователя;
// при ошибке сессия остаётся неаутентифицированной, а ошибка возвращается вызывающему.
func (s *Store) Login(ctx context.Context, creds model.Credentials) (*model.UserSummary, error) {
	result, err := s.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if result == nil || result.Token == "" {
		return nil, fmt.Errorf("login response without token")
	}

	if err := s.durable.Save(ctx, result.Token, result.User); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	user := result.User
	s.mu.Lock()
	s.user = &user
	s.token = result.Token
	s.mu.Unlock()

	return &user, nil
}

// Logout уведомляет API (ошибки игнорируются) и безусловно очищает хранилище и состояние.
func (s *Store) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Warn("logout notify failed", zap.Error(err))
	}
	if err := s.durable.Clear(ctx); err != nil {
		s.logger.Warn("clear session storage", zap.Error(err))
	}
	s.reset()
}

// InitializeAuth восстанавливает сессию из хранилища. Повреждённая запись
// пользователя считается выходом: хранилище очищается. Ошибка чтения
// хранилища оставляет записи на месте.
func (s *Store) InitializeAuth(ctx context.Context) bool {
	token, user, err := s.durable.Load(ctx)
	switch {
	case err == nil:
		s.mu.Lock()
		s.user = user
		s.token = token
		s.mu.Unlock()
		return true
	case isMissing(err):
		s.reset()
		return false
	case errors.Is(err, ErrInvalidUser):
		s.logger.Warn("restore session", zap.Error(err))
		if clearErr := s.durable.Clear(ctx); clearErr != nil {
			s.logger.Warn("clear session storage", zap.Error(clearErr))
		}
		s.reset()
		return false
	default:
		// Хранилище недоступно: записи не трогаем, следующий запрос восстановит сессию.
		s.logger.Warn("read session storage", zap.Error(err))
		s.reset()
		return false
	}
}

// HasRole сообщает, совпадает ли роль пользователя с указанной.
func (s *Store) HasRole(role model.Role) bool {
	st := s.State()
	return st.User != nil && st.User.Role == role
}

// HasAnyRole сообщает, входит ли роль пользователя в перечень.
func (s *Store) HasAnyRole(roles ...model.Role) bool {
	st := s.State()
	return st.User != nil && st.User.Role.In(roles...)
}

func (s *Store) reset() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
}
