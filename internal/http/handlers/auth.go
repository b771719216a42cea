package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ems/internal/auth"
	"ems/internal/metrics"
	"ems/internal/nav"
	"ems/internal/repo"
	"ems/internal/view"
)

// authenticate and recordLogin are swapped out in tests.
var (
	authenticate = auth.Authenticate
	recordLogin  = func(r *http.Request, id int64, at time.Time) error {
		users := repo.User{}
		return users.UpdateLastLogin(r.Context(), id, at)
	}
)

func ShowLogin(w http.ResponseWriter, r *http.Request) {
	if auth.IsAuthenticated(r) {
		http.Redirect(w, r, nav.RootPath, http.StatusSeeOther)
		return
	}
	view.Render(w, r, "auth_login.html", view.PageData{Title: "Sign in"})
}

func PostLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")
	form := map[string]interface{}{"Email": email}

	user, err := authenticate(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserInactive):
			metrics.Default.Logins.Increment("inactive")
			view.Render(w, r, "auth_login.html", view.PageData{
				Title: "Sign in",
				Data:  form,
				Error: "This account has been deactivated.",
			})
		case errors.Is(err, auth.ErrInvalidCredentials):
			metrics.Default.Logins.Increment("invalid")
			view.Render(w, r, "auth_login.html", view.PageData{
				Title: "Sign in",
				Data:  form,
				Error: "Invalid email or password.",
			})
		default:
			metrics.Default.Logins.Increment("error")
			zap.L().Error("login lookup failed", zap.Error(err))
			http.Error(w, "Sign in is unavailable right now.", http.StatusInternalServerError)
		}
		return
	}

	if err := auth.SetSession(w, r, user); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := recordLogin(r, user.ID, time.Now()); err != nil {
		zap.L().Warn("last login not recorded", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	metrics.Default.Logins.Increment("ok")
	zap.L().Info("user signed in", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	http.Redirect(w, r, nav.RootPath, http.StatusSeeOther)
}

// PostLogout is the shell's sign-out trigger.
func PostLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.ClearSession(w, r); err != nil {
		zap.L().Warn("session not cleared", zap.Error(err))
	}
	metrics.Default.SignOuts.Increment()
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
