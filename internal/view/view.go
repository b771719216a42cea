package view

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"ems/internal/auth"
	"ems/internal/http/middleware"
	"ems/internal/metrics"
	"ems/internal/nav"
	"ems/internal/policy"
	"ems/internal/shell"
	"ems/web"
)

const (
	layoutFile     = "layout.html"
	authLayoutFile = "layout_auth.html"
	authPrefix     = "auth_"
)

var (
	templates = make(map[string]*template.Template)

	// Sessions is the session provider the shell observes on every render.
	Sessions auth.SessionReader = auth.CookieSessions{}
)

var funcMap = template.FuncMap{
	"dict": func(values ...interface{}) (map[string]interface{}, error) {
		if len(values)%2 != 0 {
			return nil, fmt.Errorf("dict: odd number of arguments")
		}
		dict := make(map[string]interface{}, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", values[i])
			}
			dict[key] = values[i+1]
		}
		return dict, nil
	},
	"add": func(a, b int) int {
		return a + b
	},
	"formatDate":     timeFormatter("2006-01-02"),
	"formatDateTime": timeFormatter("2006-01-02 15:04"),
	"formatTime":     timeFormatter("15:04"),
	"formatMonth":    timeFormatter("January 2006"),
	"formatHours": func(hours float64) string {
		if hours <= 0 {
			return "-"
		}
		return fmt.Sprintf("%.1f", hours)
	},
	"formatMoney": formatMoney,
	"canAccess": func(session nav.Session, action, resource string) bool {
		a, r, ok := policy.Parse(action, resource)
		return ok && policy.Allow(session, a, r)
	},
}

func timeFormatter(layout string) func(value interface{}) string {
	return func(value interface{}) string {
		switch v := value.(type) {
		case time.Time:
			if v.IsZero() {
				return ""
			}
			return v.Format(layout)
		case *time.Time:
			if v == nil || v.IsZero() {
				return ""
			}
			return v.Format(layout)
		default:
			return ""
		}
	}
}

// formatMoney renders cents with a thousands separator, e.g. 123456 -> "1,234.56".
func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := fmt.Sprintf("%d", cents/100)
	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return fmt.Sprintf("%s%s.%02d", sign, b.String(), cents%100)
}

// InitTemplates parses every page together with its layout.
func InitTemplates() error {
	pages, err := fs.Glob(web.Templates, "templates/*.html")
	if err != nil {
		return err
	}

	for _, page := range pages {
		name := path.Base(page)
		if strings.HasPrefix(name, "layout") {
			continue
		}

		layout := layoutFile
		if strings.HasPrefix(name, authPrefix) {
			layout = authLayoutFile
		}

		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(web.Templates, "templates/"+layout, page)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return nil
}

type PageData struct {
	Title         string
	Shell         shell.Layout
	Session       nav.Session
	User          *auth.User
	Authenticated bool
	Data          interface{}
	Error         string
	Success       string
	CSRFToken     string
}

// Render writes page name inside its layout. htmx requests that are not
// boosted navigations receive only the page content.
func Render(w http.ResponseWriter, r *http.Request, name string, data PageData) {
	tmpl, ok := templates[name]
	if !ok {
		http.Error(w, "Template not found: "+name, http.StatusInternalServerError)
		return
	}

	var session nav.Session
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		data.User = user
		data.Authenticated = true
		session = user.Session()
	}

	// The context snapshot is taken by AuthRequired; the live session differs
	// when a handler has just rewritten it (profile rename).
	live := Sessions.Session(r)
	sh := shell.FromRequest(r, session)
	if sh.Observe(live) {
		metrics.Default.NameSyncs.Increment()
		zap.L().Debug("shell display name refreshed", zap.String("path", r.URL.Path))
	}
	data.Session = live
	data.Shell = sh.Layout(r.URL.Path)

	data.CSRFToken = middleware.CSRFTokenFromContext(r)

	if data.Success == "" {
		data.Success = strings.TrimSpace(r.URL.Query().Get("success"))
	}
	if data.Error == "" {
		data.Error = strings.TrimSpace(r.URL.Query().Get("error"))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	metrics.Default.PageRenders.Increment(name)

	target := "layout"
	if strings.HasPrefix(name, authPrefix) {
		target = "layout_auth"
	}
	if r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Boosted") != "true" {
		target = "content"
	}

	if err := tmpl.ExecuteTemplate(w, target, data); err != nil {
		zap.L().Error("render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
