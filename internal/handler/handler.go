// Package handler содержит HTTP-обработчики экранов дашборда прачечной.
package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/doctordoom101/laundryapp-dashboard/internal/api"
	"github.com/doctordoom101/laundryapp-dashboard/internal/guard"
	"github.com/doctordoom101/laundryapp-dashboard/internal/middleware"
	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
	"github.com/doctordoom101/laundryapp-dashboard/internal/service"
	"github.com/doctordoom101/laundryapp-dashboard/internal/session"
	"github.com/doctordoom101/laundryapp-dashboard/internal/tracking"
	"github.com/doctordoom101/laundryapp-dashboard/internal/validation"
)

// Общие тексты ошибок экранов.
const (
	msgLoadFailed = "Failed to load data. Please try again."
	msgSaveFailed = "Failed to save. Please try again."
	msgNotFound   = "Item not found"
)

// Options задаёт параметры обработчика, не относящиеся к зависимостям.
type Options struct {
	SessionTTL  time.Duration
	PublicURL   string
	CORSOrigins []string
	Limiter     *middleware.RateLimiter
}

// Handler реализует экраны дашборда. Общими между запросами остаются только
// базовый клиент API, backend сессий и ограничитель частоты.
type Handler struct {
	client   *api.Client
	public   *service.Services
	backend  session.Backend
	codec    *session.UserCodec
	ttl      time.Duration
	guard    *guard.Guard
	qr       *tracking.Generator
	limiter  *middleware.RateLimiter
	origins  []string
	logger   *zap.Logger
	now      func() time.Time
	location *time.Location
}

// NewHandler создаёт обработчик поверх базового клиента API.
func NewHandler(client *api.Client, backend session.Backend, codec *session.UserCodec, logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = session.DefaultTTL
	}
	if opts.Limiter == nil {
		opts.Limiter = middleware.NewRateLimiter(1, 5)
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	return &Handler{
		client:   client,
		public:   service.New(client),
		backend:  backend,
		codec:    codec,
		ttl:      opts.SessionTTL,
		guard:    guard.New(),
		qr:       tracking.NewGenerator(opts.PublicURL),
		limiter:  opts.Limiter,
		origins:  opts.CORSOrigins,
		logger:   logger,
		now:      time.Now,
		location: time.Local,
	}
}

// scope хранит состояние одного запроса браузера: сессия, клиент API с токеном
// этой сессии и запись принудительного перехода.
type scope struct {
	store *session.Store
	svc   *service.Services
	nav   *guard.Navigation
}

type scopeKey struct{}

func scopeFrom(r *http.Request) *scope {
	sc, _ := r.Context().Value(scopeKey{}).(*scope)
	return sc
}

// withSession привязывает хранилище браузера, восстанавливает сессию и строит
// клиент API, который подставляет токен и сбрасывает сессию при ответе 401.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		durable := session.NewDurable(h.backend.Bind(w, r), h.codec, h.ttl)
		nav := &guard.Navigation{}

		client := h.client.With(
			api.BearerToken(durable),
			api.ExpireSession(durable, nav, h.logger),
		)
		svc := service.New(client)

		store := session.NewStore(durable, svc.Auth, h.logger)
		store.InitializeAuth(r.Context())

		ctx := session.NewContext(r.Context(), store)
		ctx = context.WithValue(ctx, scopeKey{}, &scope{store: store, svc: svc, nav: nav})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// permissions перечисляет действия, доступные роли на экранах.
type permissions struct {
	CreateLaundry     bool
	CreateTransaction bool
	Manage            bool
}

func permissionsFor(role model.Role) permissions {
	return permissions{
		CreateLaundry:     role.In(model.RoleAdmin, model.RolePetugas),
		CreateTransaction: role.In(model.RoleAdmin, model.RolePetugas),
		Manage:            role == model.RoleAdmin,
	}
}

type page struct {
	Title  string
	Active string
	User   *model.UserSummary
	Menu   []menuItem
	Can    permissions
	Error  string
	Notice string
	Data   any
}

// render выполняет шаблон в буфер и отдаёт его. Если во время обработки
// клиент API запросил переход (сессия истекла), вместо страницы отдаётся редирект.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, status int, p page) {
	if h.followNavigation(w, r) {
		return
	}

	if sc := scopeFrom(r); sc != nil {
		st := sc.store.State()
		if st.IsAuthenticated() {
			p.User = st.User
			p.Menu = menuFor(st.Role(), r.URL.Path)
			p.Can = permissionsFor(st.Role())
		}
	}

	tmpl, ok := pages[name]
	if !ok {
		h.logger.Error("unknown template", zap.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		h.logger.Error("render template error", zap.Error(err), zap.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect уводит на target после действия, если не запрошен принудительный переход.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if h.followNavigation(w, r) {
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) followNavigation(w http.ResponseWriter, r *http.Request) bool {
	sc := scopeFrom(r)
	if sc == nil {
		return false
	}
	target, ok := sc.nav.Pending()
	if !ok || target == r.URL.Path {
		return false
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
	return true
}

// failure переводит ошибку API в текст для экрана. Ошибки проверки (4xx с
// сообщением) показываются как есть, остальные логируются и заменяются fallback.
func (h *Handler) failure(err error, fallback string, fields ...zap.Field) string {
	if errors.Is(err, api.ErrUnauthorized) {
		return fallback
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.ClientError() {
		return api.MessageOf(err, fallback)
	}
	if errors.Is(err, context.Canceled) {
		return fallback
	}
	h.logger.Error("api request error", append(fields, zap.Error(err))...)
	return fallback
}

// formStatus возвращает статус ответа для формы, отклонённой проверкой или API.
func formStatus(err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.ClientError() {
		return http.StatusUnprocessableEntity
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func formInt(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.PostFormValue(key), 10, 64)
	return v
}

func queryInt(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return v
}

func formFloat(r *http.Request, key string) float64 {
	v, _ := strconv.ParseFloat(r.PostFormValue(key), 64)
	return v
}

// Unauthorized показывает экран нехватки прав.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "unauthorized", http.StatusForbidden, page{Title: "Unauthorized"})
}
