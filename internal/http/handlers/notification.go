package handlers

import (
	"errors"
	"net/http"

	"ems/internal/policy"
	"ems/internal/repo"
	"ems/internal/view"
)

const (
	notificationListLimit     = 50
	notificationDropdownLimit = 5
)

func ListNotifications(w http.ResponseWriter, r *http.Request) {
	user, ok := requirePermission(w, r, policy.ActionRead, policy.ResourceNotifications)
	if !ok {
		return
	}

	repoItem := repo.Notification{}
	list, err := repoItem.ListByUser(r.Context(), user.ID, notificationListLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view.Render(w, r, "notifications.html", view.PageData{
		Title: "Notifications",
		Data:  map[string]interface{}{"Items": list},
	})
}

// ShowNotificationDropdown fills the topbar slot; it is requested by htmx and
// rendered without the layout.
func ShowNotificationDropdown(w http.ResponseWriter, r *http.Request) {
	user, ok := requirePermission(w, r, policy.ActionRead, policy.ResourceNotifications)
	if !ok {
		return
	}

	repoItem := repo.Notification{}
	list, err := repoItem.ListByUser(r.Context(), user.ID, notificationDropdownLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	unread, err := repoItem.CountUnread(r.Context(), user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view.Render(w, r, "notifications_dropdown.html", view.PageData{
		Data: map[string]interface{}{"Items": list, "Unread": unread},
	})
}

func PostMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	user, ok := requirePermission(w, r, policy.ActionUpdate, policy.ResourceNotifications)
	if !ok {
		return
	}

	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	repoItem := repo.Notification{}
	if err := repoItem.MarkRead(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			redirectWithError(w, r, "/notifications", "That notification no longer exists.")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	redirectWithSuccess(w, r, "/notifications", "")
}
