package nav

import "strings"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// RootPath only ever matches exactly, so nested dashboard routes light up
// their own entry instead of "Dashboard".
const RootPath = "/dashboard"

const FallbackTitle = "EMS"

type Entry struct {
	Name      string
	Path      string
	AdminOnly bool
	Title     string
}

// Session is the identity snapshot read from the session provider.
// The zero value is an absent session.
type Session struct {
	Name string
	Role Role
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

var entries = []Entry{
	{Name: "Dashboard", Path: "/dashboard", Title: "Dashboard Overview"},
	{Name: "Attendance", Path: "/attendance", Title: "Attendance Management"},
	{Name: "Payroll", Path: "/payroll", Title: "Payroll Management"},
	{Name: "Profile", Path: "/profile", Title: "User Profile"},
	{Name: "Employees", Path: "/dashboard/employees", AdminOnly: true, Title: "Employee Management"},
	{Name: "Reports", Path: "/reports", AdminOnly: true, Title: "Reports Management"},
	{Name: "Notifications", Path: "/notifications", Title: "Notifications"},
}

// Menu returns a copy of the navigation list in declaration order.
func Menu() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

func Filter(list []Entry, isAdmin bool) []Entry {
	visible := make([]Entry, 0, len(list))
	for _, item := range list {
		if item.AdminOnly && !isAdmin {
			continue
		}
		visible = append(visible, item)
	}
	return visible
}

// IsActive reports whether path represents currentPath. An empty currentPath
// has not been resolved yet and matches nothing.
//
// Prefix matching is literal: "/pay" also matches "/payroll2".
func IsActive(path, currentPath string) bool {
	if currentPath == "" {
		return false
	}
	if currentPath == path {
		return true
	}
	if path != RootPath && strings.HasPrefix(currentPath, path) {
		return true
	}
	return false
}

func ActiveTitle(visible []Entry, currentPath string) string {
	for _, item := range visible {
		if IsActive(item.Path, currentPath) {
			return item.Title
		}
	}
	return FallbackTitle
}

// ReconcileName returns the name to cache and whether it differs from the
// cached one.
func ReconcileName(cached, incoming string) (string, bool) {
	if cached == incoming {
		return cached, false
	}
	return incoming, true
}
