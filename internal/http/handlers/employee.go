package handlers

import (
	"net/http"

	"ems/internal/pagination"
	"ems/internal/policy"
	"ems/internal/repo"
	"ems/internal/view"
)

const employeePageSize = 20

func ListEmployees(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePermission(w, r, policy.ActionRead, policy.ResourceEmployees); !ok {
		return
	}

	page := pagination.PageParam(r.URL.Query().Get("page"))
	users := repo.User{}
	list, pager, err := fetchPage(page, employeePageSize, func(p pagination.Pager) ([]repo.User, int, error) {
		return users.List(r.Context(), p)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view.Render(w, r, "employees.html", view.PageData{
		Title: "Employees",
		Data: map[string]interface{}{
			"Items": list,
			"Pager": pager,
		},
	})
}
