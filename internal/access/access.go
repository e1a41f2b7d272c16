// Package access centralizes role ranking, session state and the capability
// checks every mutating operation must pass through. Screens and handlers
// never compare roles inline; they ask this package.
package access

import (
	"equipment-maintenance-backend/internal/model"
)

// Role is a named position in the fixed role hierarchy.
type Role string

const (
	RoleViewer     Role = "viewer"
	RoleDriver     Role = "driver"
	RoleMechanic   Role = "mechanic"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
)

// roleRanks is the total order over roles. Higher rank means more privilege.
var roleRanks = map[Role]int{
	RoleViewer:     1,
	RoleDriver:     2,
	RoleMechanic:   3,
	RoleTechnician: 4,
	RoleAdmin:      5,
}

// Rank returns the role's position in the hierarchy, 0 for unknown roles.
func (r Role) Rank() int {
	return roleRanks[r]
}

// Valid reports whether the role is part of the hierarchy.
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// SessionKind discriminates the three caller identities.
type SessionKind string

const (
	KindAnonymous     SessionKind = "anonymous"
	KindPublicAccess  SessionKind = "public"
	KindAuthenticated SessionKind = "authenticated"
)

// Session is the caller's identity for one visit. It is process-scoped
// state, never persisted except for the authenticated case.
type Session struct {
	Kind SessionKind
	User string
	Role Role
}

// Anonymous returns a session with no identity and no grants.
func Anonymous() Session {
	return Session{Kind: KindAnonymous}
}

// Public returns a scan-granted session: read access without an identity.
func Public() Session {
	return Session{Kind: KindPublicAccess}
}

// Authenticated returns a logged-in session for the given user and role.
func Authenticated(user string, role Role) Session {
	return Session{Kind: KindAuthenticated, User: user, Role: role}
}

// Performer returns the name mutations are attributed to.
func (s Session) Performer() string {
	if s.Kind == KindAuthenticated {
		return s.User
	}
	return string(s.Kind)
}

// HasRank reports whether the session meets the minimum role. Anonymous
// callers never do; a public-access grant only satisfies the lowest rank.
func HasRank(s Session, min Role) bool {
	switch s.Kind {
	case KindAuthenticated:
		return s.Role.Rank() >= min.Rank()
	case KindPublicAccess:
		return min.Rank() <= RoleViewer.Rank()
	default:
		return false
	}
}

// Capability minimum ranks, defined once. Adding a check means adding a
// predicate here, not a role comparison at a call site.
func CanAddServiceRecord(s Session) bool { return HasRank(s, RoleMechanic) }
func CanMarkLubrication(s Session) bool  { return HasRank(s, RoleDriver) }
func CanUploadDocuments(s Session) bool  { return HasRank(s, RoleMechanic) }
func CanAddTask(s Session) bool          { return HasRank(s, RoleDriver) }
func CanManageUsers(s Session) bool      { return HasRank(s, RoleAdmin) }

// CanViewMachine reports whether the session may read machine data at all.
func CanViewMachine(s Session) bool { return HasRank(s, RoleViewer) }

// CanEditMachine decides machine-specific edit rights. Admins always may; a
// machine's EditPermissions set widens access to the roles it names; with no
// set declared, mechanic rank is the default requirement.
func CanEditMachine(s Session, m *model.Machine) bool {
	if HasRank(s, RoleAdmin) {
		return true
	}
	if s.Kind != KindAuthenticated {
		return false
	}
	if len(m.EditPermissions) > 0 {
		for _, role := range m.EditPermissions {
			if Role(role) == s.Role {
				return true
			}
		}
		return false
	}
	return HasRank(s, RoleMechanic)
}
