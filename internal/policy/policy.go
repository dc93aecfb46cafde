package policy

import "slices"

// Role is one of the closed set of dashboard roles carried in the
// access token's role claim.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleCEO   Role = "CEO"
	RolePM    Role = "PM"
	RoleDev   Role = "DEV"
)

// Valid returns true if r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCEO, RolePM, RoleDev:
		return true
	}
	return false
}

// Permission represents an authorized action on a dashboard resource.
type Permission string

const (
	PermProjectsView   Permission = "projects:view"
	PermProjectsManage Permission = "projects:manage"
	PermProjectsDelete Permission = "projects:delete"
	PermTasksView      Permission = "tasks:view"
	PermTasksManage    Permission = "tasks:manage"
	PermTasksAdvance   Permission = "tasks:advance"
	PermAssetsView     Permission = "assets:view"
	PermAssetsManage   Permission = "assets:manage"
	PermAnalyticsView  Permission = "analytics:view"
	PermUsersView      Permission = "users:view"
	PermUsersManage    Permission = "users:manage"
)

// RolePermissions maps roles to allowed permissions. Notifications and
// settings are visible to every authenticated role and are deliberately
// absent from this table.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermProjectsView,
		PermProjectsManage,
		PermProjectsDelete,
		PermTasksView,
		PermTasksManage,
		PermTasksAdvance,
		PermAssetsView,
		PermAssetsManage,
		PermAnalyticsView,
		PermUsersView,
		PermUsersManage,
	},
	RoleCEO: {
		PermProjectsView,
		PermAnalyticsView,
	},
	RolePM: {
		PermProjectsView,
		PermProjectsManage,
		PermTasksView,
		PermTasksManage,
		PermTasksAdvance,
		PermAssetsView,
		PermAssetsManage,
	},
	RoleDev: {
		PermTasksView,
		PermTasksAdvance,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role Role, perm Permission) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	return slices.Contains(perms, perm)
}

// Allows reports whether role may perform action on resource, e.g.
// Allows(RolePM, "tasks", "manage"). Unknown resource/action pairs are
// denied.
func Allows(role Role, resource, action string) bool {
	return HasPermission(role, Permission(resource+":"+action))
}
