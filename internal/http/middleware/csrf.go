package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"ems/internal/auth"
)

type csrfKey string

const (
	csrfContextKey csrfKey = "csrf_token"
	csrfSessionKey         = "csrf_token"

	// CSRFFormField and CSRFHeader are where unsafe requests carry the token.
	// htmx requests send the header via hx-headers on <body>.
	CSRFFormField = "csrf_token"
	CSRFHeader    = "X-CSRF-Token"
)

func CSRFTokenFromContext(r *http.Request) string {
	if token, ok := r.Context().Value(csrfContextKey).(string); ok {
		return token
	}
	return ""
}

// CSRFMiddleware keeps one token per session and checks it on every
// state-changing request, including the sign-out form.
func CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := auth.SessionStore(r)
		token, _ := session.Values[csrfSessionKey].(string)
		if token == "" {
			token = generateCSRFToken()
			session.Values[csrfSessionKey] = token
			_ = session.Save(r, w)
		}

		if isUnsafeMethod(r.Method) && !validCSRFToken(r, token) {
			http.Error(w, "CSRF token mismatch.", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), csrfContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validCSRFToken(r *http.Request, token string) bool {
	sent := r.Header.Get(CSRFHeader)
	if sent == "" {
		sent = r.FormValue(CSRFFormField)
	}
	return sent != "" && subtle.ConstantTimeCompare([]byte(sent), []byte(token)) == 1
}

func isUnsafeMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func generateCSRFToken() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}
