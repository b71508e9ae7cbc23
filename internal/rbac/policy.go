package rbac

import "go-shinsei/internal/directory"

// Permission is one resource/action pair granted to a role.
type Permission struct {
	Resource string
	Action   string
}

// rolePermissions is the fixed role matrix. Roles inherit downwards:
// admin > manager > employee.
var rolePermissions = map[string][]Permission{
	directory.RoleEmployee: {
		{Resource: "request", Action: "read"},
		{Resource: "request", Action: "create"},
	},
	directory.RoleManager: {
		{Resource: "request", Action: "approve"},
		{Resource: "report", Action: "read"},
	},
	directory.RoleAdmin: {
		{Resource: "settings", Action: "read"},
		{Resource: "settings", Action: "update"},
	},
}

// roleInheritance maps each role to the role it inherits permissions from.
var roleInheritance = map[string]string{
	directory.RoleAdmin:   directory.RoleManager,
	directory.RoleManager: directory.RoleEmployee,
}
