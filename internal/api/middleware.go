package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// LoginPath указывает экран входа, на который уводит истёкшая сессия.
const LoginPath = "/login"

// TokenSource отдаёт токен из долговременного хранилища сессии.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SessionClearer очищает долговременное хранилище сессии.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

// Navigator принудительно переводит пользователя на другой экран.
type Navigator interface {
	Navigate(path string)
}

// JSONHeaders проставляет заголовки JSON.
func JSONHeaders() Middleware {
	return func(next Handler) Handler {
		return func(req *http.Request) (*http.Response, error) {
			if req.Body != nil {
				req.Header.Set("Content-Type", "application/json")
			}
			req.Header.Set("Accept", "application/json")
			return next(req)
		}
	}
}

// BearerToken добавляет заголовок Authorization, если в хранилище есть токен.
func BearerToken(src TokenSource) Middleware {
	return func(next Handler) Handler {
		return func(req *http.Request) (*http.Response, error) {
			if token, err := src.Token(req.Context()); err == nil && token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			return next(req)
		}
	}
}

// ExpireSession обрабатывает ответ 401: очищает хранилище сессии и уводит на экран входа.
// Сам ответ передаётся дальше без изменений, ошибку получает вызывающий код.
func ExpireSession(clearer SessionClearer, nav Navigator, logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next Handler) Handler {
		return func(req *http.Request) (*http.Response, error) {
			resp, err := next(req)
			if err != nil || resp.StatusCode != http.StatusUnauthorized {
				return resp, err
			}

			logger.Info("api session expired",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
			)
			if clearErr := clearer.Clear(req.Context()); clearErr != nil {
				logger.Warn("clear session storage", zap.Error(clearErr))
			}
			nav.Navigate(LoginPath)
			return resp, nil
		}
	}
}
