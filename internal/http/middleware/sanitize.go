package middleware

import (
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	maxFormBytes = 1 << 20 // 1MB; the dashboard has no uploads
	maxFieldLen  = 500
)

// SanitizeForm caps the body size, trims every posted value and rejects NUL
// bytes or oversized fields before handlers see the form.
func SanitizeForm(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
			next.ServeHTTP(w, r)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Request body too large.", http.StatusRequestEntityTooLarge)
			return
		}

		for key, values := range r.PostForm {
			for i, value := range values {
				clean := strings.TrimSpace(value)
				if strings.ContainsRune(clean, '\x00') || utf8.RuneCountInString(clean) > maxFieldLen {
					http.Error(w, "Request contains invalid input.", http.StatusBadRequest)
					return
				}
				r.PostForm[key][i] = clean
			}
		}
		r.Form = r.PostForm

		next.ServeHTTP(w, r)
	})
}
