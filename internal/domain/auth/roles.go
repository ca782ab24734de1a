package auth

// Role is the closed set of roles the dashboard knows about. Scoping
// decisions switch on these values, never on free-form strings.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(value), true
	}
	return "", false
}

const (
	PermUsersRead        = "org.users.read"
	PermUsersWrite       = "org.users.write"
	PermDepartmentsRead  = "org.departments.read"
	PermDepartmentsWrite = "org.departments.write"
	PermTasksRead        = "tasks.read"
	PermTasksWrite       = "tasks.write"
	PermAttachmentsWrite = "attachments.write"
	PermPerformanceRead  = "performance.read"
	PermReportsRun       = "reports.run"
	PermAuditRead        = "audit.read"
	PermMetricsRead      = "metrics.read"
)

var DefaultPermissions = []string{
	PermUsersRead,
	PermUsersWrite,
	PermDepartmentsRead,
	PermDepartmentsWrite,
	PermTasksRead,
	PermTasksWrite,
	PermAttachmentsWrite,
	PermPerformanceRead,
	PermReportsRun,
	PermAuditRead,
	PermMetricsRead,
}

var RolePermissions = map[Role][]string{
	RoleEmployee: {
		PermUsersRead,
		PermDepartmentsRead,
		PermTasksRead,
		PermTasksWrite,
		PermAttachmentsWrite,
	},
	RoleManager: {
		PermUsersRead,
		PermDepartmentsRead,
		PermTasksRead,
		PermTasksWrite,
		PermAttachmentsWrite,
		PermPerformanceRead,
		PermReportsRun,
	},
	RoleAdmin: {
		PermUsersRead,
		PermUsersWrite,
		PermDepartmentsRead,
		PermDepartmentsWrite,
		PermTasksRead,
		PermTasksWrite,
		PermAttachmentsWrite,
		PermPerformanceRead,
		PermReportsRun,
		PermAuditRead,
		PermMetricsRead,
	},
}
