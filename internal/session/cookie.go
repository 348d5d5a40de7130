package session

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CookieBackend хранит сессию в cookie браузера.
type CookieBackend struct {
	Secure bool
}

// Bind возвращает хранилище поверх cookie запроса и заголовков ответа.
func (b CookieBackend) Bind(w http.ResponseWriter, r *http.Request) Storage {
	return &CookieStorage{
		w:       w,
		r:       r,
		secure:  b.Secure,
		pending: make(map[string]*string),
	}
}

// CookieStorage читает значения из cookie запроса и пишет Set-Cookie в ответ.
// Записи, сделанные в рамках запроса, видны последующим чтениям того же запроса.
type CookieStorage struct {
	w       http.ResponseWriter
	r       *http.Request
	secure  bool
	pending map[string]*string
}

func (s *CookieStorage) Get(_ context.Context, key string) (string, error) {
	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", ErrNoValue
		}
		return *v, nil
	}

	cookie, err := s.r.Cookie(key)
	if err != nil || cookie.Value == "" {
		return "", ErrNoValue
	}

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", ErrNoValue
	}
	return value, nil
}

func (s *CookieStorage) Set(_ context.Context, key, value string, ttl time.Duration) error {
	cookie := &http.Cookie{
		Name:     key,
		Value:    url.QueryEscape(value),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
		cookie.MaxAge = int(ttl.Seconds())
	}
	http.SetCookie(s.w, cookie)

	v := value
	s.pending[key] = &v
	return nil
}

func (s *CookieStorage) Remove(_ context.Context, keys ...string) error {
	for _, key := range keys {
		http.SetCookie(s.w, &http.Cookie{
			Name:     key,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
		s.pending[key] = nil
	}
	return nil
}
