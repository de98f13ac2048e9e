package teamstate

import (
	"testing"

	"github.com/exportapp2024/cordelia-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDeriveRole(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()
	team := dto.TeamSummary{ID: uuid.New(), Name: "Team"}

	tests := []struct {
		name    string
		members []dto.TeamMember
		info    dto.TeamInfo
		want    Role
	}{
		{
			name: "no data",
			want: RoleNone,
		},
		{
			name: "owner member row for this user",
			members: []dto.TeamMember{
				{ID: uuid.New(), UserID: userID, Role: "owner"},
			},
			want: RoleOwner,
		},
		{
			name: "owner member row belongs to someone else",
			members: []dto.TeamMember{
				{ID: uuid.New(), UserID: otherID, Role: "owner"},
				{ID: uuid.New(), UserID: userID, Role: "member"},
			},
			info: dto.TeamInfo{MemberTeams: []dto.TeamSummary{team}},
			want: RoleMember,
		},
		{
			name: "owned teams without member rows",
			info: dto.TeamInfo{OwnedTeams: []dto.TeamSummary{team}},
			want: RoleOwner,
		},
		{
			name: "member teams only",
			info: dto.TeamInfo{MemberTeams: []dto.TeamSummary{team}},
			want: RoleMember,
		},
		{
			name: "ownership wins over membership",
			info: dto.TeamInfo{
				OwnedTeams:  []dto.TeamSummary{team},
				MemberTeams: []dto.TeamSummary{{ID: uuid.New(), Name: "Other"}},
			},
			want: RoleOwner,
		},
		{
			name: "member rows present but none for this user",
			members: []dto.TeamMember{
				{ID: uuid.New(), UserID: otherID, Role: "owner"},
			},
			want: RoleNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveRole(tt.members, tt.info, userID))
		})
	}
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "owner", RoleOwner.String())
	assert.Equal(t, "member", RoleMember.String())
	assert.Equal(t, "none", RoleNone.String())
}

func TestSnapshot_HasCalendarAccess(t *testing.T) {
	assert.False(t, Snapshot{Role: RoleNone}.HasCalendarAccess())
	assert.True(t, Snapshot{Role: RoleMember}.HasCalendarAccess())
	assert.True(t, Snapshot{Role: RoleOwner}.HasCalendarAccess())
}

func TestSnapshot_RemovableMembers(t *testing.T) {
	owner := dto.TeamMember{ID: uuid.New(), Role: "owner"}
	member := dto.TeamMember{ID: uuid.New(), Role: "member"}

	snap := Snapshot{Members: []dto.TeamMember{owner, member}}
	removable := snap.RemovableMembers()

	assert.Len(t, removable, 1)
	assert.Equal(t, member.ID, removable[0].ID)
}
