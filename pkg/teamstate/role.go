package teamstate

import (
	"github.com/exportapp2024/cordelia-api/pkg/dto"
	"github.com/google/uuid"
)

// Role is the user's single team affiliation. It is derived, never stored:
// the tagged value makes "owner and member at once" unrepresentable.
type Role int

const (
	RoleNone Role = iota
	RoleMember
	RoleOwner
)

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleMember:
		return "member"
	default:
		return "none"
	}
}

// DeriveRole reduces the latest member list and team info to one role.
// A member row with role owner for this user wins outright, then a non-empty
// ownedTeams list; ownership takes precedence over membership when the
// server data claims both.
func DeriveRole(members []dto.TeamMember, info dto.TeamInfo, userID uuid.UUID) Role {
	for _, m := range members {
		if m.UserID == userID && m.Role == "owner" {
			return RoleOwner
		}
	}
	if len(info.OwnedTeams) > 0 {
		return RoleOwner
	}
	if len(info.MemberTeams) > 0 {
		return RoleMember
	}
	return RoleNone
}
