package policy

import (
	"slices"
	"strings"

	"ems/internal/nav"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceDashboard     Resource = "dashboard"
	ResourceAttendance    Resource = "attendance"
	ResourcePayroll       Resource = "payroll"
	ResourceProfile       Resource = "profile"
	ResourceEmployees     Resource = "employees"
	ResourceReports       Resource = "reports"
	ResourceNotifications Resource = "notifications"
)

// resourcePaths mirrors the navigation entries, most specific path first.
var resourcePaths = []struct {
	path     string
	resource Resource
}{
	{"/dashboard/employees", ResourceEmployees},
	{"/dashboard", ResourceDashboard},
	{"/attendance", ResourceAttendance},
	{"/payroll", ResourcePayroll},
	{"/profile", ResourceProfile},
	{"/reports", ResourceReports},
	{"/notifications", ResourceNotifications},
}

func Resources() []Resource {
	return []Resource{
		ResourceDashboard,
		ResourceAttendance,
		ResourcePayroll,
		ResourceProfile,
		ResourceEmployees,
		ResourceReports,
		ResourceNotifications,
	}
}

func Actions() []Action {
	return []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}
}

// ResourceForPath maps a request path to the resource guarding it. Unlike
// menu highlighting it matches on segment boundaries.
func ResourceForPath(path string) (Resource, bool) {
	for _, item := range resourcePaths {
		if path == item.path || strings.HasPrefix(path, item.path+"/") {
			return item.resource, true
		}
	}
	return "", false
}

// AdminOnly reports whether the navigation entry for resource is restricted
// to administrators.
func AdminOnly(resource Resource) bool {
	for _, entry := range nav.Menu() {
		if r, ok := ResourceForPath(entry.Path); ok && r == resource {
			return entry.AdminOnly
		}
	}
	return false
}

func Allow(session nav.Session, action Action, resource Resource) bool {
	if session.IsAdmin() {
		return true
	}
	// Any other role, EMPLOYEE included, gets the employee rules; only an
	// absent session is denied outright.
	if session.Role == "" {
		return false
	}
	if AdminOnly(resource) {
		return false
	}

	switch action {
	case ActionRead:
		return true
	case ActionCreate:
		return resource == ResourceAttendance
	case ActionUpdate:
		return resource == ResourceProfile || resource == ResourceAttendance || resource == ResourceNotifications
	default:
		return false
	}
}

// Parse normalises template input such as "Read" or " reports ". It reports
// false for names that are not a known action and resource.
func Parse(action, resource string) (Action, Resource, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(action)))
	r := Resource(strings.ToLower(strings.TrimSpace(resource)))
	return a, r, slices.Contains(Actions(), a) && slices.Contains(Resources(), r)
}
