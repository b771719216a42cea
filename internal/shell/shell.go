// Package shell builds the navigation chrome (desktop sidebar, mobile drawer
// and topbar) that wraps every dashboard page.
package shell

import (
	"net/http"
	"net/url"

	"ems/internal/nav"
)

const (
	Brand       = "EMS"
	SignOutPath = "/logout"

	// SidebarParam carries the drawer state in the request; it is never stored.
	SidebarParam = "sidebar"
	sidebarOpen  = "open"
)

type Link struct {
	Name   string
	Path   string
	Title  string
	Active bool
}

type Layout struct {
	Brand       string
	Heading     string
	Items       []Link
	UserName    string
	IsAdmin     bool
	// SidebarOpen renders the drawer; its lg:hidden class keeps it off large
	// screens, where the desktop sidebar is always shown.
	SidebarOpen bool
	OpenHref    string
	CloseHref   string
	SignOutPath string
}

// Shell is the per-render state of the navigation chrome.
type Shell struct {
	session  nav.Session
	userName string
	open     bool
	syncs    int
}

func New(session nav.Session) *Shell {
	return &Shell{session: session, userName: session.Name}
}

func (s *Shell) Open() {
	s.open = true
}

func (s *Shell) Close() {
	s.open = false
}

func (s *Shell) SidebarOpen() bool {
	return s.open
}

// Observe takes a new session snapshot. The cached display name is replaced
// only when it differs; the return value reports whether it was.
func (s *Shell) Observe(session nav.Session) bool {
	s.session = session
	next, changed := nav.ReconcileName(s.userName, session.Name)
	if changed {
		s.userName = next
		s.syncs++
	}
	return changed
}

func (s *Shell) UserName() string {
	return s.userName
}

// NameSyncs counts how many times Observe replaced the cached name.
func (s *Shell) NameSyncs() int {
	return s.syncs
}

// Layout derives the view model for currentPath. The admin flag and heading
// are recomputed on every call.
func (s *Shell) Layout(currentPath string) Layout {
	isAdmin := s.session.IsAdmin()
	visible := nav.Filter(nav.Menu(), isAdmin)

	items := make([]Link, 0, len(visible))
	for _, item := range visible {
		items = append(items, Link{
			Name:   item.Name,
			Path:   item.Path,
			Title:  item.Title,
			Active: nav.IsActive(item.Path, currentPath),
		})
	}

	return Layout{
		Brand:       Brand,
		Heading:     nav.ActiveTitle(visible, currentPath),
		Items:       items,
		UserName:    s.userName,
		IsAdmin:     isAdmin,
		SidebarOpen: s.open,
		OpenHref:    drawerHref(currentPath, true),
		CloseHref:   drawerHref(currentPath, false),
		SignOutPath: SignOutPath,
	}
}

// FromRequest builds the shell for r and applies the drawer param.
func FromRequest(r *http.Request, session nav.Session) *Shell {
	s := New(session)
	if r.URL.Query().Get(SidebarParam) == sidebarOpen {
		s.Open()
	}
	return s
}

func drawerHref(currentPath string, open bool) string {
	if currentPath == "" {
		currentPath = nav.RootPath
	}
	if !open {
		return currentPath
	}
	q := url.Values{}
	q.Set(SidebarParam, sidebarOpen)
	return currentPath + "?" + q.Encode()
}
