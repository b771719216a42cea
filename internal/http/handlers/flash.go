package handlers

import (
	"net/http"
	"net/url"
)

func redirectWithSuccess(w http.ResponseWriter, r *http.Request, path string, message string) {
	redirectWithFlash(w, r, path, "success", message)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, path string, message string) {
	redirectWithFlash(w, r, path, "error", message)
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, path, key, message string) {
	if message != "" {
		if parsed, err := url.Parse(path); err == nil {
			q := parsed.Query()
			q.Set(key, message)
			parsed.RawQuery = q.Encode()
			path = parsed.String()
		} else {
			path = path + "?" + key + "=" + url.QueryEscape(message)
		}
	}
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}
