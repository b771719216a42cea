package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/nav"
)

func TestResourceForPath(t *testing.T) {
	tests := []struct {
		path string
		want Resource
		ok   bool
	}{
		{"/dashboard", ResourceDashboard, true},
		{"/dashboard/employees", ResourceEmployees, true},
		{"/dashboard/employees/3", ResourceEmployees, true},
		{"/reports/export", ResourceReports, true},
		{"/payroll2", "", false},
		{"/login", "", false},
	}
	for _, tt := range tests {
		got, ok := ResourceForPath(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestAdminOnlyFollowsMenu(t *testing.T) {
	assert.True(t, AdminOnly(ResourceEmployees))
	assert.True(t, AdminOnly(ResourceReports))
	assert.False(t, AdminOnly(ResourceDashboard))
	assert.False(t, AdminOnly(ResourceNotifications))
}

func TestAllow(t *testing.T) {
	admin := nav.Session{Name: "Root", Role: nav.RoleAdmin}
	employee := nav.Session{Name: "Ana", Role: nav.RoleEmployee}
	absent := nav.Session{}

	for _, resource := range Resources() {
		for _, action := range Actions() {
			assert.True(t, Allow(admin, action, resource), "admin %s %s", action, resource)
			assert.False(t, Allow(absent, action, resource), "absent %s %s", action, resource)
		}
	}

	assert.True(t, Allow(employee, ActionRead, ResourceDashboard))
	assert.True(t, Allow(employee, ActionCreate, ResourceAttendance))
	assert.True(t, Allow(employee, ActionUpdate, ResourceProfile))
	assert.False(t, Allow(employee, ActionRead, ResourceEmployees))
	assert.False(t, Allow(employee, ActionRead, ResourceReports))
	assert.False(t, Allow(employee, ActionDelete, ResourceAttendance))
	assert.False(t, Allow(employee, ActionCreate, ResourcePayroll))
}

func TestAllowOtherNonAdminRoles(t *testing.T) {
	for _, role := range []nav.Role{"MANAGER", "employee", "admin"} {
		session := nav.Session{Name: "Kim", Role: role}
		require.False(t, session.IsAdmin(), role)

		// every link the menu shows this session must also pass the guard
		for _, entry := range nav.Filter(nav.Menu(), session.IsAdmin()) {
			resource, ok := ResourceForPath(entry.Path)
			require.True(t, ok, entry.Path)
			assert.True(t, Allow(session, ActionRead, resource), "%s read %s", role, resource)
		}
		assert.False(t, Allow(session, ActionRead, ResourceReports), role)
		assert.False(t, Allow(session, ActionRead, ResourceEmployees), role)
		assert.True(t, Allow(session, ActionCreate, ResourceAttendance), role)
		assert.False(t, Allow(session, ActionDelete, ResourceAttendance), role)
	}
}

func TestParse(t *testing.T) {
	action, resource, ok := Parse(" Read ", "REPORTS")
	assert.True(t, ok)
	assert.Equal(t, ActionRead, action)
	assert.Equal(t, ResourceReports, resource)

	_, _, ok = Parse("archive", "reports")
	assert.False(t, ok)
	_, _, ok = Parse("read", "containers")
	assert.False(t, ok)
}
