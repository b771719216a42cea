package middleware

import (
	"context"
	"net/http"

	"ems/internal/auth"
	"ems/internal/policy"
)

type contextKey string

const UserKey contextKey = "user"

func UserFromContext(ctx context.Context) (*auth.User, bool) {
	user, ok := ctx.Value(UserKey).(*auth.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.CurrentUser(r)
		if !ok {
			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", "/login")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require guards a route with policy.Allow. It expects AuthRequired to have
// run first; a missing user is treated as an absent session.
func Require(action policy.Action, resource policy.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := UserFromContext(r.Context())
			if !policy.Allow(user.Session(), action, resource) {
				http.Error(w, "You do not have permission to view this page.", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
