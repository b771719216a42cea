package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/auth"
	"ems/internal/http/middleware"
	"ems/internal/nav"
	"ems/internal/pagination"
	"ems/internal/policy"
	"ems/internal/repo"
	"ems/internal/view"
)

func init() {
	auth.Store = auth.NewStore("handlers-test-secret-0123456789", 3600, false)
}

func stubLogin(t *testing.T, fn func(ctx context.Context, email, password string) (*auth.User, error)) *int {
	t.Helper()
	require.NoError(t, view.InitTemplates())

	recorded := 0
	prevAuth, prevRecord := authenticate, recordLogin
	authenticate = fn
	recordLogin = func(*http.Request, int64, time.Time) error {
		recorded++
		return nil
	}
	t.Cleanup(func() { authenticate, recordLogin = prevAuth, prevRecord })
	return &recorded
}

func postForm(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestPostLoginSuccess(t *testing.T) {
	recorded := stubLogin(t, func(_ context.Context, email, password string) (*auth.User, error) {
		return &auth.User{ID: 7, Email: email, Name: "Ana", Role: nav.RoleEmployee}, nil
	})

	rec := httptest.NewRecorder()
	PostLogin(rec, postForm("/login", url.Values{"email": {"ana@ems.local"}, "password": {"pw"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, nav.RootPath, rec.Header().Get("Location"))
	assert.Equal(t, 1, *recorded)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	user, ok := auth.CurrentUser(r)
	require.True(t, ok)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, nav.RoleEmployee, user.Role)
}

func TestPostLoginRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid", auth.ErrInvalidCredentials, "Invalid email or password."},
		{"inactive", auth.ErrUserInactive, "This account has been deactivated."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorded := stubLogin(t, func(context.Context, string, string) (*auth.User, error) {
				return nil, tt.err
			})

			rec := httptest.NewRecorder()
			PostLogin(rec, postForm("/login", url.Values{"email": {"ana@ems.local"}, "password": {"bad"}}))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.Contains(t, rec.Body.String(), `value="ana@ems.local"`)
			assert.Zero(t, *recorded)
		})
	}
}

func TestPostLogout(t *testing.T) {
	login := httptest.NewRecorder()
	require.NoError(t, auth.SetSession(login, httptest.NewRequest(http.MethodPost, "/login", nil),
		&auth.User{ID: 1, Name: "Root", Role: nav.RoleAdmin}))

	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	for _, c := range login.Result().Cookies() {
		r.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	PostLogout(rec, r)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Negative(t, cookies[0].MaxAge)

	r = httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	PostLogout(rec, r)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
}

func TestRedirectWithFlash(t *testing.T) {
	rec := httptest.NewRecorder()
	redirectWithSuccess(rec, httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil), "/attendance?page=2", "Checked in.")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/attendance?page=2&success=Checked+in.", rec.Header().Get("Location"))

	r := httptest.NewRequest(http.MethodPost, "/attendance/check-out", nil)
	r.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	redirectWithError(rec, r, "/attendance", "No open check-in.")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/attendance?error=No+open+check-in.", rec.Header().Get("HX-Redirect"))
}

func TestRequirePermission(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/reports", nil)
	rec := httptest.NewRecorder()
	_, ok := requirePermission(rec, r, policy.ActionRead, policy.ResourceReports)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	employee := &auth.User{ID: 2, Role: nav.RoleEmployee}
	r = r.WithContext(context.WithValue(r.Context(), middleware.UserKey, employee))
	rec = httptest.NewRecorder()
	_, ok = requirePermission(rec, r, policy.ActionRead, policy.ResourceReports)
	assert.False(t, ok)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	r.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	_, ok = requirePermission(rec, r, policy.ActionRead, policy.ResourceReports)
	assert.False(t, ok)
	assert.Contains(t, rec.Header().Get("HX-Redirect"), "/dashboard?error=")

	rec = httptest.NewRecorder()
	user, ok := requirePermission(rec, r, policy.ActionCreate, policy.ResourceAttendance)
	assert.True(t, ok)
	assert.Equal(t, employee, user)
}

func TestReportPeriod(t *testing.T) {
	now := time.Date(2026, 2, 14, 10, 0, 0, 0, time.Local)

	from, to, err := reportPeriod(httptest.NewRequest(http.MethodGet, "/reports", nil), now)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", from.Format(dateLayout))
	assert.Equal(t, "2026-02-28", to.Format(dateLayout))

	from, to, err = reportPeriod(httptest.NewRequest(http.MethodGet, "/reports?from=2026-01-05&to=2026-01-20", nil), now)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", from.Format(dateLayout))
	assert.Equal(t, "2026-01-20", to.Format(dateLayout))

	_, _, err = reportPeriod(httptest.NewRequest(http.MethodGet, "/reports?from=2026-03-01&to=2026-01-01", nil), now)
	assert.ErrorIs(t, err, errInvalidPeriod)

	_, _, err = reportPeriod(httptest.NewRequest(http.MethodGet, "/reports?from=yesterday", nil), now)
	assert.Error(t, err)
}

func TestAttendanceWorkbook(t *testing.T) {
	file, err := attendanceWorkbook([]repo.AttendanceSummary{
		{UserID: 1, Name: "Ana", Email: "ana@ems.local", Department: "Ops", Days: 3, Hours: 23.456},
		{UserID: 2, Name: "Bo", Email: "bo@ems.local", Days: 0},
	})
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Employee", "Email", "Department", "Days", "Hours"}, rows[0])
	assert.Equal(t, []string{"Ana", "ana@ems.local", "Ops", "3", "23.46"}, rows[1])
	assert.Equal(t, "-", rows[2][2])
}

func TestFetchPageClampsPastLastPage(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}
	var offsets []int
	fetch := func(p pagination.Pager) ([]int, int, error) {
		offsets = append(offsets, p.Offset())
		start := min(p.Offset(), len(rows))
		end := min(start+p.PageSize, len(rows))
		return rows[start:end], len(rows), nil
	}

	list, pager, err := fetchPage(999, 2, fetch)
	require.NoError(t, err)
	assert.Equal(t, 3, pager.CurrentPage)
	assert.Equal(t, []int{5}, list)
	assert.Equal(t, []int{1996, 4}, offsets)

	offsets = nil
	list, pager, err = fetchPage(2, 2, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, pager.CurrentPage)
	assert.Equal(t, []int{3, 4}, list)
	assert.Equal(t, []int{2}, offsets)
}

func TestFetchPageEmpty(t *testing.T) {
	calls := 0
	list, pager, err := fetchPage(4, 10, func(pagination.Pager) ([]string, int, error) {
		calls++
		return nil, 0, nil
	})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, pager.CurrentPage)
	assert.Equal(t, 1, calls)
}
