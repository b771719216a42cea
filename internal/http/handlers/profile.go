package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"ems/internal/auth"
	"ems/internal/policy"
	"ems/internal/repo"
	"ems/internal/view"
)

const maxNameLen = 100

func ShowProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := requirePermission(w, r, policy.ActionRead, policy.ResourceProfile)
	if !ok {
		return
	}

	record, ok := loadProfile(w, r, user.ID)
	if !ok {
		return
	}
	view.Render(w, r, "profile.html", view.PageData{Title: "Profile", Data: record})
}

// PostUpdateProfile renames the user and rewrites the session, so the shell
// rendered in this same response already shows the new name.
func PostUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := requirePermission(w, r, policy.ActionUpdate, policy.ResourceProfile)
	if !ok {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		record, ok := loadProfile(w, r, user.ID)
		if !ok {
			return
		}
		view.Render(w, r, "profile.html", view.PageData{
			Title: "Profile",
			Data:  record,
			Error: "Please enter a display name of at most 100 characters.",
		})
		return
	}

	users := repo.User{}
	if err := users.UpdateName(r.Context(), user.ID, name); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := auth.SetName(w, r, name); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	zap.L().Info("display name updated", zap.Int64("user_id", user.ID))

	record, ok := loadProfile(w, r, user.ID)
	if !ok {
		return
	}
	view.Render(w, r, "profile.html", view.PageData{
		Title:   "Profile",
		Data:    record,
		Success: "Profile saved.",
	})
}

func loadProfile(w http.ResponseWriter, r *http.Request, id int64) (*repo.User, bool) {
	users := repo.User{}
	record, err := users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return record, true
}
