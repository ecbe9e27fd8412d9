package auth

// Role is the closed set of user roles. The numeric values are the wire
// encoding used in JWT claims, API payloads and the users table.
type Role int

const (
	RoleStaff      Role = 0
	RoleAdmin      Role = 1
	RoleSuperAdmin Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleStaff:
		return "staff"
	case RoleAdmin:
		return "admin"
	case RoleSuperAdmin:
		return "super-admin"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStaff || r == RoleAdmin || r == RoleSuperAdmin
}

// IsAdmin reports whether r is admin or super-admin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsSuperAdmin reports whether r is the super-admin role.
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}
