package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctordoom101/laundryapp-dashboard/internal/model"
	"github.com/doctordoom101/laundryapp-dashboard/internal/session"
)

func stateFor(role model.Role) session.State {
	return session.State{
		User:  &model.UserSummary{ID: 1, Name: "u", Role: role},
		Token: "abc",
	}
}

func TestEvaluate_Unauthenticated(t *testing.T) {
	d := Evaluate(session.State{}, nil, "/laundry-items?status=antri")
	assert.Equal(t, RedirectLogin, d.Outcome)
	assert.Equal(t, "/login?from=%2Flaundry-items%3Fstatus%3Dantri", d.Location)

	d = Evaluate(session.State{Token: "abc"}, nil, "/")
	assert.Equal(t, RedirectLogin, d.Outcome)
	assert.Equal(t, "/login", d.Location)
}

func TestEvaluate_RolesOutsideAllowedSet(t *testing.T) {
	routes := map[string][]model.Role{
		"/laundry-items": {model.RoleAdmin, model.RolePetugas},
		"/users":         {model.RoleAdmin},
		"/outlets":       {model.RoleAdmin, model.RoleOwner},
		"/transactions":  {model.RoleAdmin, model.RolePetugas},
		"/reports":       {model.RoleAdmin, model.RoleOwner},
	}
	roles := []model.Role{model.RoleAdmin, model.RolePetugas, model.RoleOwner, "kasir", ""}

	for path, allowed := range routes {
		for _, role := range roles {
			d := Evaluate(stateFor(role), allowed, path)
			if role.In(allowed...) {
				assert.Equal(t, Allow, d.Outcome, "%s as %q", path, role)
				continue
			}
			assert.Equal(t, RedirectUnauthorized, d.Outcome, "%s as %q", path, role)
			assert.Equal(t, UnauthorizedPath, d.Location)
		}
	}
}

func TestEvaluate_AnyAuthenticatedRole(t *testing.T) {
	for _, role := range []model.Role{model.RoleAdmin, model.RolePetugas, model.RoleOwner} {
		assert.Equal(t, Allow, Evaluate(stateFor(role), nil, "/products").Outcome)
	}
}

func TestSafeReturn(t *testing.T) {
	tests := map[string]string{
		"":                       "/",
		"/reports?type=daily":    "/reports?type=daily",
		"//evil.example.com":     "/",
		"https://evil.example":   "/",
		"/\\evil.example":        "/",
		"laundry-items":          "/",
		"/login?from=%2Freports": "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeReturn(in), in)
	}
}

type stubAuth struct{}

func (stubAuth) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	return &model.LoginResult{User: model.UserSummary{ID: 3, Name: "Owner", Role: model.RoleOwner}, Token: "t"}, nil
}

func (stubAuth) Logout(ctx context.Context) error { return nil }

func TestGuard_RequireReevaluatesEachRequest(t *testing.T) {
	storage := session.NewMemoryStorage()
	durable := session.NewDurable(storage, session.NewUserCodec("test-secret"), time.Hour)
	store := session.NewStore(durable, stubAuth{}, nil)

	served := 0
	h := New().Require(model.RoleAdmin, model.RoleOwner)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served++
	}))

	do := func() *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/reports", nil)
		req = req.WithContext(session.NewContext(req.Context(), store))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Result()
	}

	res := do()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login?from=%2Freports", res.Header.Get("Location"))

	_, err := store.Login(context.Background(), model.Credentials{Username: "owner", Password: "x"})
	require.NoError(t, err)
	res = do()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 1, served)

	store.Logout(context.Background())
	res = do()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, 1, served)
}

func TestGuard_WithoutSessionRedirectsToLogin(t *testing.T) {
	h := New().Require()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("protected handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestNavigation(t *testing.T) {
	var n Navigation
	_, ok := n.Pending()
	assert.False(t, ok)

	n.Navigate(LoginPath)
	target, ok := n.Pending()
	assert.True(t, ok)
	assert.Equal(t, LoginPath, target)
}
