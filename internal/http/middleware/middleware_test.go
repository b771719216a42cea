package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/auth"
	"ems/internal/nav"
	"ems/internal/policy"
)

func init() {
	auth.Store = auth.NewStore("middleware-test-secret-0123456789", 3600, false)
}

func loggedIn(t *testing.T, user *auth.User) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, auth.SetSession(rec, httptest.NewRequest(http.MethodPost, "/login", nil), user))
	return rec.Result().Cookies()
}

func request(method, target string, body string, cookies []*http.Cookie) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthRequiredRedirects(t *testing.T) {
	rec := httptest.NewRecorder()
	AuthRequired(ok).ServeHTTP(rec, request(http.MethodGet, "/dashboard", "", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	r := request(http.MethodGet, "/dashboard", "", nil)
	r.Header.Set("HX-Request", "true")
	AuthRequired(ok).ServeHTTP(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
}

func TestAuthRequiredStoresUser(t *testing.T) {
	cookies := loggedIn(t, &auth.User{ID: 4, Name: "Ana", Role: nav.RoleEmployee})

	var seen *auth.User
	h := AuthRequired(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), request(http.MethodGet, "/dashboard", "", cookies))

	require.NotNil(t, seen)
	assert.Equal(t, int64(4), seen.ID)
	assert.Equal(t, nav.RoleEmployee, seen.Role)
}

func TestRequire(t *testing.T) {
	tests := []struct {
		name string
		user *auth.User
		want int
	}{
		{"admin", &auth.User{ID: 1, Role: nav.RoleAdmin}, http.StatusOK},
		{"employee", &auth.User{ID: 2, Role: nav.RoleEmployee}, http.StatusForbidden},
		{"no role", &auth.User{ID: 3}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AuthRequired(Require(policy.ActionRead, policy.ResourceReports)(ok))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, request(http.MethodGet, "/reports", "", loggedIn(t, tt.user)))
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	Require(policy.ActionRead, policy.ResourceDashboard)(ok).ServeHTTP(rec, request(http.MethodGet, "/dashboard", "", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCSRF(t *testing.T) {
	var token string
	h := CSRFMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = CSRFTokenFromContext(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodGet, "/login", "", nil))
	require.NotEmpty(t, token)
	cookies := rec.Result().Cookies()

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodPost, "/logout", "", cookies))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodPost, "/logout", url.Values{CSRFFormField: {"nope"}}.Encode(), cookies))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodPost, "/logout", url.Values{CSRFFormField: {token}}.Encode(), cookies))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r := request(http.MethodPost, "/notifications/1/read", "", cookies)
	r.Header.Set(CSRFHeader, token)
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSanitizeForm(t *testing.T) {
	var got string
	h := SanitizeForm(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.FormValue("name")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodPost, "/profile", "name=+Ana+Silva+", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana Silva", got)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodPost, "/profile", "name=a%00b", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request(http.MethodPost, "/profile", "name="+strings.Repeat("x", maxFieldLen+1), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
