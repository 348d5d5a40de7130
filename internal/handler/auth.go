package handler

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/doctordoom101/laundryapp-dashboard/internal/api"
	"github.com/doctordoom101/laundryapp-dashboard/internal/guard"
	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
	"github.com/doctordoom101/laundryapp-dashboard/internal/validation"
)

const msgLoginFailed = "Login failed"

type loginForm struct {
	Username string
	From     string
}

// LoginPage показывает форму входа. Вошедшего пользователя сразу возвращает на from.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	from := guard.SafeReturn(r.URL.Query().Get("from"))

	if scopeFrom(r).store.State().IsAuthenticated() {
		http.Redirect(w, r, from, http.StatusSeeOther)
		return
	}

	h.render(w, r, "login", http.StatusOK, page{
		Title: "Login",
		Data:  loginForm{From: from},
	})
}

// Login выполняет вход и возвращает пользователя на запрошенный ранее экран.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	creds := model.Credentials{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	form := loginForm{Username: creds.Username, From: guard.SafeReturn(r.PostFormValue("from"))}

	if err := validation.Credentials(creds); err != nil {
		h.render(w, r, "login", http.StatusUnprocessableEntity, page{Title: "Login", Error: err.Error(), Data: form})
		return
	}

	sc := scopeFrom(r)
	if _, err := sc.store.Login(r.Context(), creds); err != nil {
		h.render(w, r, "login", http.StatusUnauthorized, page{Title: "Login", Error: h.loginFailure(err), Data: form})
		return
	}

	http.Redirect(w, r, form.From, http.StatusSeeOther)
}

// loginFailure берёт текст из ответа API, включая 401 с неверным паролем.
func (h *Handler) loginFailure(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgLoginFailed
	}
	h.logger.Error("login error", zap.Error(err))
	return msgLoginFailed
}

// Logout завершает сессию. Ошибка уведомления API не мешает выходу.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	scopeFrom(r).store.Logout(r.Context())
	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}
