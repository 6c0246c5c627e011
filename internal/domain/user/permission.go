package user

type Permission string

const (
	// Employees
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeManage Permission = "employee.manage"

	// Attendance
	PermissionAttendanceView   Permission = "attendance.view"
	PermissionAttendanceMark   Permission = "attendance.mark"
	PermissionAttendanceDelete Permission = "attendance.delete"

	// Salary
	PermissionSalaryView    Permission = "salary.view"
	PermissionSalaryManage  Permission = "salary.manage"
	PermissionSalaryPayslip Permission = "salary.payslip"

	// Credentials
	PermissionCredentialView   Permission = "credential.view"
	PermissionCredentialManage Permission = "credential.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionAttendanceView,
		PermissionAttendanceMark,
		PermissionAttendanceDelete,
		PermissionSalaryView,
		PermissionSalaryManage,
		PermissionSalaryPayslip,
		PermissionCredentialView,
		PermissionCredentialManage,
	},
	RoleAttendance: {
		// Operator marks and reviews attendance only
		PermissionEmployeeView,
		PermissionAttendanceView,
		PermissionAttendanceMark,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
