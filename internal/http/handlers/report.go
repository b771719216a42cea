package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"ems/internal/policy"
	"ems/internal/repo"
	"ems/internal/view"
)

func ShowReports(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePermission(w, r, policy.ActionRead, policy.ResourceReports); !ok {
		return
	}

	from, to, err := reportPeriod(r, time.Now())
	if err != nil {
		redirectWithError(w, r, "/reports", "Please choose a valid period.")
		return
	}

	repoItem := repo.Attendance{}
	list, err := repoItem.Summary(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view.Render(w, r, "reports.html", view.PageData{
		Title: "Reports",
		Data: map[string]interface{}{
			"From":  from,
			"To":    to,
			"Items": list,
		},
	})
}

func ExportReports(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePermission(w, r, policy.ActionRead, policy.ResourceReports); !ok {
		return
	}

	from, to, err := reportPeriod(r, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	repoItem := repo.Attendance{}
	list, err := repoItem.Summary(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	file, err := attendanceWorkbook(list)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer file.Close()

	filename := "attendance_" + from.Format("20060102") + "_" + to.Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	if err := file.Write(w); err != nil {
		zap.L().Error("report export failed", zap.Error(err))
		return
	}
}

func attendanceWorkbook(list []repo.AttendanceSummary) (*excelize.File, error) {
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	headers := []string{"Employee", "Email", "Department", "Days", "Hours"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, item := range list {
		row := strconv.Itoa(i + 2)
		_ = file.SetCellValue(sheet, "A"+row, item.Name)
		_ = file.SetCellValue(sheet, "B"+row, item.Email)
		if item.Department != "" {
			_ = file.SetCellValue(sheet, "C"+row, item.Department)
		} else {
			_ = file.SetCellValue(sheet, "C"+row, "-")
		}
		_ = file.SetCellValue(sheet, "D"+row, item.Days)
		_ = file.SetCellValue(sheet, "E"+row, roundHours(item.Hours))
	}
	return file, nil
}

func roundHours(hours float64) float64 {
	return float64(int64(hours*100+0.5)) / 100
}
