package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"workdesk/internal/domain/auth"
	"workdesk/internal/domain/org"
)

func orgFixture() ([]org.Department, []org.User) {
	departments := []org.Department{
		{ID: "d1", Name: "Engineering", ManagerID: "mgr"},
		{ID: "d2", Name: "Design", ManagerID: "other-mgr"},
	}
	users := []org.User{
		{ID: "mgr", Name: "Manager", DepartmentID: "d1", Active: true},
		{ID: "e1", Name: "Engineer One", DepartmentID: "d1", Active: true},
		{ID: "e2", Name: "Engineer Two", DepartmentID: "d1", Active: false},
		{ID: "e3", Name: "Designer", DepartmentID: "d2", Active: true},
		{ID: "e4", Name: "Unassigned", DepartmentID: "", Active: true},
	}
	return departments, users
}

func TestResolveScopeAdminSeesAllActive(t *testing.T) {
	departments, users := orgFixture()
	scope := ResolveScope(Principal{UserID: "admin", Role: auth.RoleAdmin}, departments, users)

	assert.Len(t, scope.Departments, 2)
	ids := employeeIDs(scope)
	assert.Equal(t, []string{"mgr", "e1", "e3", "e4"}, ids, "inactive employees excluded")
}

func TestResolveScopeManagerSeesOwnTeamOnly(t *testing.T) {
	departments, users := orgFixture()
	scope := ResolveScope(Principal{UserID: "mgr", Role: auth.RoleManager}, departments, users)

	assert.Len(t, scope.Departments, 1)
	assert.Equal(t, "d1", scope.Departments[0].ID)

	ids := employeeIDs(scope)
	assert.Equal(t, []string{"e1"}, ids)
	assert.NotContains(t, ids, "mgr", "manager must not report on themself")
	assert.NotContains(t, ids, "e3", "other departments stay invisible")
	assert.NotContains(t, ids, "e2", "inactive members stay invisible")
}

func TestResolveScopeManagerWithNoDepartments(t *testing.T) {
	departments, users := orgFixture()
	scope := ResolveScope(Principal{UserID: "nobody", Role: auth.RoleManager}, departments, users)

	assert.Empty(t, scope.Departments)
	assert.Empty(t, scope.Employees)
}

func TestResolveScopeUnknownRoleFailsClosed(t *testing.T) {
	departments, users := orgFixture()
	scope := ResolveScope(Principal{UserID: "e1", Role: auth.RoleEmployee}, departments, users)

	assert.Empty(t, scope.Departments)
	assert.Empty(t, scope.Employees)
}

func employeeIDs(scope Scope) []string {
	out := make([]string, len(scope.Employees))
	for i, emp := range scope.Employees {
		out[i] = emp.ID
	}
	return out
}
