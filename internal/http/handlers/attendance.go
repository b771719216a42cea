package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ems/internal/pagination"
	"ems/internal/policy"
	"ems/internal/repo"
	"ems/internal/view"
)

const attendancePageSize = 20

func ListAttendance(w http.ResponseWriter, r *http.Request) {
	user, ok := requirePermission(w, r, policy.ActionRead, policy.ResourceAttendance)
	if !ok {
		return
	}

	page := pagination.PageParam(r.URL.Query().Get("page"))
	repoItem := repo.Attendance{}
	list, pager, err := fetchPage(page, attendancePageSize, func(p pagination.Pager) ([]repo.Attendance, int, error) {
		return repoItem.ListByUser(r.Context(), p, user.ID)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view.Render(w, r, "attendance.html", view.PageData{
		Title: "Attendance",
		Data: map[string]interface{}{
			"Items": list,
			"Pager": pager,
		},
	})
}

func PostCheckIn(w http.ResponseWriter, r *http.Request) {
	user, ok := requirePermission(w, r, policy.ActionCreate, policy.ResourceAttendance)
	if !ok {
		return
	}

	repoItem := repo.Attendance{}
	if err := repoItem.CheckIn(r.Context(), user.ID, time.Now()); err != nil {
		if errors.Is(err, repo.ErrAlreadyCheckedIn) {
			redirectWithError(w, r, "/attendance", "You have already checked in today.")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	zap.L().Info("check-in recorded", zap.Int64("user_id", user.ID))
	redirectWithSuccess(w, r, "/attendance", "Checked in.")
}

func PostCheckOut(w http.ResponseWriter, r *http.Request) {
	user, ok := requirePermission(w, r, policy.ActionUpdate, policy.ResourceAttendance)
	if !ok {
		return
	}

	repoItem := repo.Attendance{}
	if err := repoItem.CheckOut(r.Context(), user.ID, time.Now()); err != nil {
		if errors.Is(err, repo.ErrNotCheckedIn) {
			redirectWithError(w, r, "/attendance", "There is no open check-in for today.")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	zap.L().Info("check-out recorded", zap.Int64("user_id", user.ID))
	redirectWithSuccess(w, r, "/attendance", "Checked out.")
}
