package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

var errInvalidPeriod = errors.New("the start date must not be after the end date")

func parseDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, errors.New("please enter a date")
	}
	return time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.Local)
}

func parseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// reportPeriod reads from/to, defaulting to the month containing now.
func reportPeriod(r *http.Request, now time.Time) (time.Time, time.Time, error) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, -1)

	start, err := parseOptionalDate(r.URL.Query().Get("from"))
	if err != nil {
		return from, to, err
	}
	end, err := parseOptionalDate(r.URL.Query().Get("to"))
	if err != nil {
		return from, to, err
	}
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}
	if from.After(to) {
		return from, to, errInvalidPeriod
	}
	return from, to, nil
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
