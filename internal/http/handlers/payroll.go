package handlers

import (
	"net/http"

	"ems/internal/policy"
	"ems/internal/repo"
	"ems/internal/view"
)

// payslipHistory is two years of monthly payslips.
const payslipHistory = 24

func ListPayroll(w http.ResponseWriter, r *http.Request) {
	user, ok := requirePermission(w, r, policy.ActionRead, policy.ResourcePayroll)
	if !ok {
		return
	}

	repoItem := repo.Payslip{}
	list, err := repoItem.ListByUser(r.Context(), user.ID, payslipHistory)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view.Render(w, r, "payroll.html", view.PageData{
		Title: "Payroll",
		Data:  map[string]interface{}{"Items": list},
	})
}
