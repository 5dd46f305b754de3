package models

// Role is a user's role within a single project. Roles are scoped to the
// project membership entry, not to the user account.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleDeveloper Role = "developer"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleDeveloper:
		return true
	}
	return false
}

// Action is a project-scoped operation subject to role checks.
type Action string

const (
	ActionCreateTask       Action = "create-task"
	ActionDeleteTask       Action = "delete-task"
	ActionUpdateTaskFields Action = "update-task-fields"
	ActionUpdateTaskStatus Action = "update-task-status"
	ActionManageMembers    Action = "manage-members"
	ActionEditProject      Action = "edit-project"
)

// capabilities is the single authorization table. Every mutation entry point
// consults this instead of branching on role strings inline.
var capabilities = map[Action]map[Role]bool{
	ActionCreateTask:       {RoleAdmin: true, RoleManager: true},
	ActionDeleteTask:       {RoleAdmin: true, RoleManager: true},
	ActionUpdateTaskFields: {RoleAdmin: true, RoleManager: true},
	ActionUpdateTaskStatus: {RoleAdmin: true, RoleManager: true, RoleDeveloper: true},
	ActionManageMembers:    {RoleAdmin: true, RoleManager: true},
	ActionEditProject:      {RoleAdmin: true, RoleManager: true},
}

// Permits reports whether role may perform action. The developer status-update
// permission is further restricted to the caller's own assignment; that check
// lives in the task service because it needs the task document.
func Permits(role Role, action Action) bool {
	return capabilities[action][role]
}
