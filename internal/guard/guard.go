// Package guard решает, можно ли показать запрошенный экран текущей сессии.
package guard

import (
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
	"github.com/doctordoom101/laundryapp-dashboard/internal/session"
)

// Пути экранов, на которые уводит охранник.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
	HomePath         = "/"
)

// Outcome описывает итог проверки перехода.
type Outcome int

const (
	Allow Outcome = iota
	RedirectLogin
	RedirectUnauthorized
)

// Decision содержит итог проверки и адрес перенаправления.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Evaluate проверяет один переход. Пустой allowed означает «любой вошедший пользователь».
// Неаутентифицированного пользователя уводит на вход с запоминанием запрошенного адреса.
func Evaluate(state session.State, allowed []model.Role, requested string) Decision {
	if !state.IsAuthenticated() {
		return Decision{Outcome: RedirectLogin, Location: LoginLocation(requested)}
	}
	if len(allowed) > 0 && !state.Role().In(allowed...) {
		return Decision{Outcome: RedirectUnauthorized, Location: UnauthorizedPath}
	}
	return Decision{Outcome: Allow}
}

// LoginLocation строит адрес экрана входа с возвратом на requested.
func LoginLocation(requested string) string {
	from := SafeReturn(requested)
	if from == HomePath {
		return LoginPath
	}
	return LoginPath + "?from=" + url.QueryEscape(from)
}

// SafeReturn допускает только локальные абсолютные пути, иначе возвращает "/".
func SafeReturn(from string) string {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") || strings.HasPrefix(from, "/\\") {
		return HomePath
	}
	u, err := url.Parse(from)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return HomePath
	}
	if u.Path == LoginPath {
		return HomePath
	}
	return from
}

// Guard реализует middleware, проверяющий сессию запроса на каждом переходе.
type Guard struct{}

// New создаёт охранника.
func New() *Guard {
	return &Guard{}
}

// Require пропускает запрос только для вошедшего пользователя с одной из ролей.
// Без ролей достаточно входа. Результат не кешируется.
func (g *Guard) Require(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var state session.State
			if s, ok := session.FromContext(r.Context()); ok {
				state = s.State()
			}

			d := Evaluate(state, roles, r.URL.RequestURI())
			if d.Outcome != Allow {
				http.Redirect(w, r, d.Location, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Navigation запоминает принудительный переход, запрошенный во время обработки запроса.
type Navigation struct {
	mu     sync.Mutex
	target string
}

// Navigate запоминает адрес перехода.
func (n *Navigation) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.target = path
}

// Pending возвращает запомненный адрес.
func (n *Navigation) Pending() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target, n.target != ""
}
