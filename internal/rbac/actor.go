package rbac

// Role is the closed set of roles a user record or request actor can carry.
// Anything outside these three values is rejected at the edges so the policy
// can rely on exhaustive matching.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated caller of an operation. It is supplied
// per-request by the identity middleware and never persisted.
type Actor struct {
	ID   int64
	Role Role
}
