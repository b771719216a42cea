package handlers

import (
	"context"
	"net/http"
	"time"

	"ems/internal/repo"
)

// Healthz reports whether the database answers within two seconds.
func Healthz(w http.ResponseWriter, r *http.Request) {
	if repo.DB == nil {
		http.Error(w, "database not initialised", http.StatusServiceUnavailable)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := repo.DB.Ping(ctx); err != nil {
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
