package handlers

import (
	"context"
	"net/http"

	"ems/internal/auth"
	"ems/internal/http/middleware"
	"ems/internal/policy"
)

func currentUser(ctx context.Context) (*auth.User, bool) {
	return middleware.UserFromContext(ctx)
}

func requirePermission(w http.ResponseWriter, r *http.Request, action policy.Action, resource policy.Resource) (*auth.User, bool) {
	user, ok := currentUser(r.Context())
	if !ok {
		http.Error(w, "Your session has expired. Please sign in again.", http.StatusUnauthorized)
		return nil, false
	}
	if !policy.Allow(user.Session(), action, resource) {
		renderPermissionDenied(w, r)
		return user, false
	}
	return user, true
}

// renderPermissionDenied answers htmx calls with a redirect carrying the
// message, since a 403 body would be swapped into the page.
func renderPermissionDenied(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		redirectWithError(w, r, "/dashboard", "You do not have permission to do that.")
		return
	}
	http.Error(w, "You do not have permission to do that.", http.StatusForbidden)
}
