package report

import (
	"workdesk/internal/domain/auth"
	"workdesk/internal/domain/org"
)

// Principal is the requesting identity, passed in explicitly. The engine never
// reads ambient session state.
type Principal struct {
	UserID string
	Role   auth.Role
}

// Scope is the subset of the org a principal may report on.
type Scope struct {
	Departments []org.Department
	Employees   []org.User
}

// ResolveScope applies the visibility rules:
//
//   - admin: every department and every active employee
//   - manager: only self-managed departments and their active members,
//     excluding the manager's own record
//   - anything else: empty scope (fails closed)
//
// Deterministic and side-effect free; employee order follows input order.
func ResolveScope(principal Principal, departments []org.Department, employees []org.User) Scope {
	switch principal.Role {
	case auth.RoleAdmin:
		var active []org.User
		for _, emp := range employees {
			if emp.Active {
				active = append(active, emp)
			}
		}
		return Scope{Departments: departments, Employees: active}

	case auth.RoleManager:
		var managed []org.Department
		managedIDs := map[string]bool{}
		for _, dep := range departments {
			if dep.ManagerID == principal.UserID {
				managed = append(managed, dep)
				managedIDs[dep.ID] = true
			}
		}

		var team []org.User
		for _, emp := range employees {
			if !emp.Active || emp.ID == principal.UserID {
				continue
			}
			if managedIDs[emp.DepartmentID] {
				team = append(team, emp)
			}
		}
		return Scope{Departments: managed, Employees: team}
	}

	return Scope{}
}
