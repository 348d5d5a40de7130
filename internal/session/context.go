package session

import "context"

type contextKey string

const storeKey contextKey = "session"

// NewContext кладёт сессию запроса в контекст.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey, s)
}

// FromContext извлекает сессию запроса из контекста.
func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeKey).(*Store)
	return s, ok && s != nil
}
