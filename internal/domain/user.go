package domain

import (
	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleLeader UserRole = "leader"
	RoleMember UserRole = "member"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleLeader, RoleMember:
		return true
	default:
		return false
	}
}

// Principal is the authenticated caller. Accounts live in the identity
// service; only the id and role travel with a request.
type Principal struct {
	UserID uuid.UUID `json:"user_id"`
	Role   UserRole  `json:"role"`
}

func (p *Principal) HasRole(requiredRole UserRole) bool {
	switch requiredRole {
	case RoleAdmin:
		return p.Role == RoleAdmin
	case RoleLeader:
		return p.Role == RoleLeader || p.Role == RoleAdmin
	case RoleMember:
		return p.Role == RoleMember || p.Role == RoleLeader || p.Role == RoleAdmin
	default:
		return false
	}
}
