package handlers

import (
	"errors"
	"net/http"
	"time"

	"ems/internal/policy"
	"ems/internal/repo"
	"ems/internal/view"
)

func ShowDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := requirePermission(w, r, policy.ActionRead, policy.ResourceDashboard)
	if !ok {
		return
	}

	attendance := repo.Attendance{}
	_, err := attendance.Today(r.Context(), user.ID, time.Now())
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	checkedIn := err == nil

	notifications := repo.Notification{}
	unread, err := notifications.CountUnread(r.Context(), user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	employees := 0
	if policy.Allow(user.Session(), policy.ActionRead, policy.ResourceEmployees) {
		users := repo.User{}
		if employees, err = users.Count(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	view.Render(w, r, "dashboard.html", view.PageData{
		Title: "Dashboard",
		Data: map[string]interface{}{
			"CheckedIn": checkedIn,
			"Unread":    unread,
			"Employees": employees,
		},
	})
}
