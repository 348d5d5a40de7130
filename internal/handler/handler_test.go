package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doctordoom101/laundryapp-dashboard/internal/api"
	"github.com/doctordoom101/laundryapp-dashboard/internal/middleware"
	"github.com/doctordoom101/laundryapp-dashboard/internal/session"
)

const itemsJSON = `{"data":[
 {"id":1,"code":"LDR-001","customer_name":"Budi","service":"Cuci Kering","quantity":2,"total_price":50000,"process_status":"selesai","payment_status":"lunas","created_at":"2025-01-15T09:00:00Z"},
 {"id":2,"code":"LDR-002","customer_name":"Sari","service":"Setrika","quantity":1,"total_price":60000,"process_status":"proses","payment_status":"dp","created_at":"2025-01-15T10:00:00Z"},
 {"id":3,"code":"LDR-003","customer_name":"Andi","service":"Bed Cover","quantity":1,"total_price":100000,"process_status":"antri","payment_status":"belum_bayar","created_at":"2025-01-14T10:00:00Z"}
]}`

var accounts = map[string]struct{ token, user string }{
	"admin": {"tok-admin", `{"id":1,"name":"Admin","role":"admin"}`},
	"sari":  {"tok-petugas", `{"id":2,"name":"Sari","role":"petugas"}`},
	"owner": {"tok-owner", `{"id":3,"name":"Owner","role":"owner"}`},
}

// stubAPI имитирует удалённый API прачечной.
type stubAPI struct {
	mu      sync.Mutex
	expired bool
	logouts int
	queries map[string]string
	bodies  map[string]map[string]any
}

func (s *stubAPI) authorized(r *http.Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expired {
		return false
	}
	auth := r.Header.Get("Authorization")
	for _, acc := range accounts {
		if auth == "Bearer "+acc.token {
			return true
		}
	}
	return false
}

func (s *stubAPI) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := r.Method + " " + r.URL.Path
	s.queries[key] = r.URL.RawQuery
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		var body map[string]any
		_ = json.Unmarshal(data, &body)
		s.bodies[key] = body
	}
}

func (s *stubAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/login":
		var creds struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&creds)
		acc, ok := accounts[creds.Username]
		if !ok || creds.Password != "password" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"user":`+acc.user+`,"token":"`+acc.token+`"}`)
		return
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/laundry-items/check/"):
		if strings.TrimPrefix(r.URL.Path, "/laundry-items/check/") != "LDR-001" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Laundry item not found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"data":{"id":1,"code":"LDR-001","customer_name":"Budi","service":"Cuci Kering","total_price":50000,"process_status":"selesai","payment_status":"lunas","created_at":"2025-01-15T09:00:00Z"}}`)
		return
	}

	if !s.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Unauthenticated."}`)
		return
	}
	s.record(r)

	switch r.Method + " " + r.URL.Path {
	case "POST /logout":
		s.mu.Lock()
		s.logouts++
		s.mu.Unlock()
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	case "GET /laundry-items":
		_, _ = io.WriteString(w, itemsJSON)
	case "GET /laundry-items/1":
		_, _ = io.WriteString(w, `{"data":{"id":1,"code":"LDR-001","customer_name":"Budi","total_price":50000,"process_status":"selesai","payment_status":"belum_bayar"}}`)
	case "POST /laundry-items":
		s.mu.Lock()
		name, _ := s.bodies["POST /laundry-items"]["customer_name"].(string)
		s.mu.Unlock()
		if name == "Reject" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"message":"The selected service is invalid."}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"data":{"id":4}}`)
	case "POST /transactions":
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"data":{"id":9}}`)
	case "GET /outlets":
		_, _ = io.WriteString(w, `{"data":[{"id":1,"name":"Pusat","address":"Jl. Merdeka 1"},{"id":2,"name":"Cabang","address":"Jl. Sudirman"}]}`)
	case "GET /products":
		_, _ = io.WriteString(w, `{"data":[{"id":1,"name":"Cuci Kering","type":"kiloan","price":7000,"outlet_id":1}]}`)
	case "GET /reports":
		_, _ = io.WriteString(w, `{"period":"daily","date":"2025-01-15","statistics":{"total_items":3,"total_revenue":150000,"total_paid":100000,"outstanding":50000},"items":[{"code":"LDR-001","customer_name":"Budi","service":"Cuci Kering","total_price":50000,"paid_amount":50000}]}`)
	default:
		_, _ = io.WriteString(w, `{"data":[]}`)
	}
}

func (s *stubAPI) query(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[key]
}

func (s *stubAPI) body(key string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[key]
}

func (s *stubAPI) logoutCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logouts
}

func (s *stubAPI) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = true
}

type testEnv struct {
	api    *stubAPI
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	stub := &stubAPI{queries: map[string]string{}, bodies: map[string]map[string]any{}}
	ts := httptest.NewServer(stub)
	t.Cleanup(ts.Close)

	h := NewHandler(
		api.NewClient(ts.URL),
		session.CookieBackend{},
		session.NewUserCodec("test-secret"),
		zap.NewNop(),
		Options{PublicURL: "http://dashboard.test", Limiter: middleware.NewRateLimiter(100, 100)},
	)
	h.now = func() time.Time { return time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC) }
	h.location = time.UTC

	return &testEnv{api: stub, router: h.SetupRouter()}
}

func (e *testEnv) do(t *testing.T, method, target string, form url.Values, cookies []*http.Cookie) *http.Response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec.Result()
}

func (e *testEnv) login(t *testing.T, username string) []*http.Cookie {
	t.Helper()

	res := e.do(t, http.MethodPost, "/login", url.Values{"username": {username}, "password": {"password"}}, nil)
	defer res.Body.Close()
	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	var cookies []*http.Cookie
	for _, c := range res.Cookies() {
		if c.MaxAge >= 0 && c.Value != "" {
			cookies = append(cookies, c)
		}
	}
	require.Len(t, cookies, 2)
	return cookies
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(data)
}

func cookieByName(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_SetsSessionAndReturnsToFrom(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodPost, "/login", url.Values{
		"username": {"admin"},
		"password": {"password"},
		"from":     {"/reports"},
	}, nil)
	defer res.Body.Close()

	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/reports", res.Header.Get("Location"))

	token := cookieByName(res, session.TokenKey)
	require.NotNil(t, token)
	assert.Equal(t, "tok-admin", token.Value)
	assert.True(t, token.HttpOnly)
	require.NotNil(t, cookieByName(res, session.UserKey))
}

func TestLogin_RejectsExternalFrom(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodPost, "/login", url.Values{
		"username": {"admin"},
		"password": {"password"},
		"from":     {"//evil.example/x"},
	}, nil)
	defer res.Body.Close()

	assert.Equal(t, "/", res.Header.Get("Location"))
}

func TestLogin_FailureShowsAPIMessage(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodPost, "/login", url.Values{"username": {"admin"}, "password": {"wrong"}}, nil)
	body := readBody(t, res)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, body, "Invalid credentials")
	assert.Contains(t, body, `value="admin"`)
}

func TestLogin_EmptyFormIsRejectedLocally(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodPost, "/login", url.Values{"username": {""}, "password": {""}}, nil)
	body := readBody(t, res)

	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, body, "Username is required")
}

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/reports?type=monthly", nil, nil)
	defer res.Body.Close()

	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login?from="+url.QueryEscape("/reports?type=monthly"), res.Header.Get("Location"))
}

func TestGuard_WrongRoleGoesToUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t, "sari")

	res := env.do(t, http.MethodGet, "/users", nil, cookies)
	res.Body.Close()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/unauthorized", res.Header.Get("Location"))

	res = env.do(t, http.MethodGet, "/products", nil, cookies)
	body := readBody(t, res)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Cuci Kering")
	assert.NotContains(t, body, "/products/new")

	res = env.do(t, http.MethodGet, "/unauthorized", nil, cookies)
	body = readBody(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, body, "permission")
}

func TestMenu_PerRole(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/", nil, env.login(t, "owner"))
	body := readBody(t, res)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `href="/reports"`)
	assert.Contains(t, body, `href="/outlets"`)
	assert.NotContains(t, body, `href="/users"`)
	assert.NotContains(t, body, `href="/laundry-items"`)

	res = env.do(t, http.MethodGet, "/", nil, env.login(t, "admin"))
	body = readBody(t, res)
	assert.Contains(t, body, `href="/users"`)
	assert.Contains(t, body, `href="/transactions"`)
}

func TestDashboard_ShowsStatistics(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/", nil, env.login(t, "admin"))
	body := readBody(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Rp 210.000")
	assert.Contains(t, body, "LDR-003")
	assert.Contains(t, env.api.query("GET /laundry-items"), "per_page=")
}

func TestReports_ShowsFormattedTotals(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/reports?type=daily&date=2025-01-15&outlet_id=all", nil, env.login(t, "admin"))
	body := readBody(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Rp 150.000")
	assert.Contains(t, body, "Rp 50.000")
	assert.Equal(t, "date=2025-01-15&type=daily", env.api.query("GET /reports"))
}

func TestReports_ExportPDF(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/reports/export.pdf?type=daily&date=2025-01-15&outlet_id=2", nil, env.login(t, "owner"))
	body := readBody(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "%PDF"))
	assert.Equal(t, "date=2025-01-15&outlet_id=2&type=daily", env.api.query("GET /reports"))
}

func TestExpiredToken_RedirectsToLoginAndClearsSession(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t, "admin")
	env.api.expire()

	res := env.do(t, http.MethodGet, "/laundry-items", nil, cookies)
	defer res.Body.Close()

	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))

	token := cookieByName(res, session.TokenKey)
	require.NotNil(t, token)
	assert.Equal(t, -1, token.MaxAge)
	user := cookieByName(res, session.UserKey)
	require.NotNil(t, user)
	assert.Equal(t, -1, user.MaxAge)
}

func TestForgedUserCookie_IsLoggedOut(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t, "sari")
	for _, c := range cookies {
		if c.Name == session.UserKey {
			c.Value = "forged"
		}
	}

	res := env.do(t, http.MethodGet, "/laundry-items", nil, cookies)
	defer res.Body.Close()

	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login?from=%2Flaundry-items", res.Header.Get("Location"))
}

func TestLogout_ClearsSession(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t, "admin")

	res := env.do(t, http.MethodPost, "/logout", nil, cookies)
	defer res.Body.Close()

	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))
	assert.Equal(t, -1, cookieByName(res, session.TokenKey).MaxAge)
	assert.Equal(t, 1, env.api.logoutCount())
}

func TestLaundryItems_Filters(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/laundry-items?status=selesai", nil, env.login(t, "sari"))
	body := readBody(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "LDR-001")
	assert.NotContains(t, body, "LDR-003")
	assert.Contains(t, body, "Showing 1 of 3 items")
}

func TestCreateLaundryItem(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t, "sari")

	form := url.Values{
		"customer_name":  {"Budi"},
		"customer_phone": {"081234567890"},
		"service_id":     {"1"},
		"quantity":       {"2.5"},
	}
	res := env.do(t, http.MethodPost, "/laundry-items", form, cookies)
	res.Body.Close()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/laundry-items", res.Header.Get("Location"))
	assert.Equal(t, 2.5, env.api.body("POST /laundry-items")["quantity"])

	form.Set("customer_name", "Reject")
	res = env.do(t, http.MethodPost, "/laundry-items", form, cookies)
	body := readBody(t, res)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, body, "The selected service is invalid.")
	assert.Contains(t, body, `value="Reject"`)
}

func TestCreateTransaction_PaidInFull(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{
		"laundry_item_id": {"1"},
		"method":          {"qris"},
		"amount":          {"1000"},
		"paid_full":       {"1"},
		"paid_at":         {"2025-01-15T09:30"},
	}
	res := env.do(t, http.MethodPost, "/transactions", form, env.login(t, "admin"))
	res.Body.Close()

	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	body := env.api.body("POST /transactions")
	assert.Equal(t, 50000.0, body["amount"])
	assert.Equal(t, "qris", body["method"])
	assert.Equal(t, "2025-01-15T09:30:00Z", body["paid_at"])
}

func TestNewTransaction_ListsUnpaidItemsFromFullPage(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/transactions/new", nil, env.login(t, "admin"))
	body := readBody(t, res)

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "per_page=1000", env.api.query("GET /laundry-items"))
	assert.Contains(t, body, "LDR-002")
	assert.Contains(t, body, "LDR-003")
	assert.NotContains(t, body, "LDR-001")
}

func TestCheckStatus_Page(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/check-status?code=NOPE", nil, nil)
	body := readBody(t, res)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, "Item not found")

	res = env.do(t, http.MethodGet, "/check-status?code=LDR-001", nil, nil)
	body = readBody(t, res)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Completed")
	assert.Contains(t, body, "Payment completed")
}

func TestCheckStatusJSON(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/check/LDR-001", nil)
	req.Header.Set("Origin", "https://laundry.example")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var resp checkStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "selesai", resp.ProcessStatus)
	assert.Equal(t, "Completed", resp.ProcessLabel)

	res := env.do(t, http.MethodGet, "/api/check/NOPE", nil, nil)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestUnknownPath_RedirectsHome(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/no-such-page", nil, nil)
	res.Body.Close()

	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))
}
