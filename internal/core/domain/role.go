package domain

import "strings"

// Role is a named privilege tier. Manager and Admin form the elevated
// tier and are equivalent in every authorization decision.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

// ParseRole resolves a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "employee":
		return RoleEmployee, true
	case "manager":
		return RoleManager, true
	case "admin":
		return RoleAdmin, true
	}
	return "", false
}

// Elevated reports whether the role belongs to the Manager/Admin tier.
func (r Role) Elevated() bool {
	return r == RoleManager || r == RoleAdmin
}

// Actor is the authenticated identity attached to a request by the auth
// middleware. It is the only source of identity and roles for
// authorization decisions; request bodies are never consulted.
type Actor struct {
	Username string
	Roles    []Role
}

// Elevated reports whether the actor holds any elevated role.
func (a Actor) Elevated() bool {
	for _, r := range a.Roles {
		if r.Elevated() {
			return true
		}
	}
	return false
}

// CanViewNote reports whether the actor may read a note owned by ownerUsername.
func (a Actor) CanViewNote(ownerUsername string) bool {
	return a.Elevated() || a.Username == ownerUsername
}

// CanEditNote reports whether the actor may update a note owned by
// ownerUsername. Reassigning the owner is checked separately via
// CanAssignOwner.
func (a Actor) CanEditNote(ownerUsername string) bool {
	return a.Elevated() || a.Username == ownerUsername
}

// CanAssignOwner reports whether the actor may create or reassign a note
// owned by ownerUsername. Non-elevated actors may only own their own notes.
func (a Actor) CanAssignOwner(ownerUsername string) bool {
	return a.Elevated() || a.Username == ownerUsername
}

// CanDeleteNote reports whether the actor may delete notes. Deletion is
// reserved to the elevated tier regardless of ownership.
func (a Actor) CanDeleteNote() bool {
	return a.Elevated()
}

// CanManageUsers reports whether the actor may perform account management.
func (a Actor) CanManageUsers() bool {
	return a.Elevated()
}

// RoleNames converts a role set to its string form for token claims and
// API payloads.
func RoleNames(roles []Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}

// RolesFromNames parses a list of role names, rejecting unknown values.
func RolesFromNames(names []string) ([]Role, bool) {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		r, ok := ParseRole(n)
		if !ok {
			return nil, false
		}
		roles = append(roles, r)
	}
	return roles, true
}
