package integration

import (
	"context"
	"testing"

	"github.com/exportapp2024/cordelia-api/internal/models"
	"github.com/exportapp2024/cordelia-api/internal/services"
	"github.com/exportapp2024/cordelia-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamService_Integration_Create(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTeamService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)

	team, err := svc.Create(ctx, owner.ID, "Clinic Team")

	require.NoError(t, err)
	assert.NotEmpty(t, team.ID)
	assert.Equal(t, "Clinic Team", team.Name)
	assert.Equal(t, owner.ID, team.OwnerID)

	// Owner shows up as an owner-role member
	members, err := svc.Members(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, models.RoleOwner, members[0].Role)
	assert.Equal(t, owner.ID, members[0].UserID)
}

func TestTeamService_Integration_Create_DefaultName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTeamService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)

	team, err := svc.Create(ctx, owner.ID, "")

	require.NoError(t, err)
	assert.Equal(t, services.DefaultTeamName, team.Name)
}

func TestTeamService_Integration_Create_SecondTeamRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTeamService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	_, err := svc.Create(ctx, owner.ID, "First")
	require.NoError(t, err)

	_, err = svc.Create(ctx, owner.ID, "Second")
	assert.ErrorIs(t, err, services.ErrAlreadyOnTeam)
}

func TestTeamService_Integration_InviteAcceptFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTeamService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	invitee := fixtures.CreateUser(t)
	fixtures.CreateTeam(t, owner, testutil.WithTeamName("Clinic"))

	invitation, err := svc.Invite(ctx, owner.ID, invitee.Email)
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusPending, invitation.Status)

	// The invitee sees it as pending
	pending, err := svc.PendingInvitations(ctx, invitee.ID, "")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, invitation.ID, pending[0].ID)
	assert.Equal(t, "Clinic", pending[0].Team.Name)

	// The owner sees it as sent
	sent, err := svc.SentInvitations(ctx, owner.ID, "")
	require.NoError(t, err)
	require.Len(t, sent, 1)

	require.NoError(t, svc.Accept(ctx, invitation.ID, invitee.ID))

	// Membership recorded, invitation resolved
	members, err := svc.Members(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	pending, err = svc.PendingInvitations(ctx, invitee.ID, "")
	require.NoError(t, err)
	assert.Empty(t, pending)

	owned, member, err := svc.Info(ctx, invitee.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)
	require.Len(t, member, 1)
	assert.Equal(t, "Clinic", member[0].Name)
}

func TestTeamService_Integration_AcceptRejectsOtherPending(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTeamService(tdb.DB)
	ctx := context.Background()

	ownerA := fixtures.CreateUser(t)
	ownerB := fixtures.CreateUser(t)
	invitee := fixtures.CreateUser(t)
	teamA := fixtures.CreateTeam(t, ownerA)
	teamB := fixtures.CreateTeam(t, ownerB)

	invA := fixtures.CreateInvitation(t, teamA, ownerA, invitee.Email)
	fixtures.CreateInvitation(t, teamB, ownerB, invitee.Email)

	pending, err := svc.PendingInvitations(ctx, invitee.ID, "")
	require.NoError(t, err)
	require.Len(t, pending, 2)

	require.NoError(t, svc.Accept(ctx, invA.ID, invitee.ID))

	// Accepting one team's invitation resolves the other team's too
	pending, err = svc.PendingInvitations(ctx, invitee.ID, "")
	require.NoError(t, err)
	assert.Empty(t, pending)

	owned, member, err := svc.Info(ctx, invitee.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)
	require.Len(t, member, 1)
	assert.Equal(t, teamA.ID, member[0].ID)
}

func TestTeamService_Integration_DuplicateInvite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTeamService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	fixtures.CreateTeam(t, owner)

	_, err := svc.Invite(ctx, owner.ID, "invitee@example.com")
	require.NoError(t, err)

	_, err = svc.Invite(ctx, owner.ID, "invitee@example.com")
	assert.ErrorIs(t, err, services.ErrAlreadyInvited)
}

func TestTeamService_Integration_RejectFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTeamService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	invitee := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	invitation := fixtures.CreateInvitation(t, team, owner, invitee.Email)

	require.NoError(t, svc.Reject(ctx, invitation.ID, invitee.ID))

	pending, err := svc.PendingInvitations(ctx, invitee.ID, "")
	require.NoError(t, err)
	assert.Empty(t, pending)

	// The user remains unaffiliated
	members, err := svc.Members(ctx, invitee.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestTeamService_Integration_RemoveMember(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTeamService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	member := fixtures.CreateUser(t)
	outsider := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	fixtures.AddTeamMember(t, team, member)

	members, err := svc.Members(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	var memberRow *models.TeamMember
	var ownerRow *models.TeamMember
	for i := range members {
		if members[i].Role == models.RoleMember {
			memberRow = &members[i]
		} else {
			ownerRow = &members[i]
		}
	}
	require.NotNil(t, memberRow)
	require.NotNil(t, ownerRow)

	// The owner row cannot be removed, not even by the owner themselves
	err = svc.RemoveMember(ctx, ownerRow.ID, owner.ID)
	assert.ErrorIs(t, err, services.ErrCannotRemoveOwner)

	// A user unrelated to the row cannot remove it
	err = svc.RemoveMember(ctx, memberRow.ID, outsider.ID)
	assert.ErrorIs(t, err, services.ErrNotTeamOwner)

	require.NoError(t, svc.RemoveMember(ctx, memberRow.ID, owner.ID))

	members, err = svc.Members(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestTeamService_Integration_MemberLeaves(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTeamService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	member := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	fixtures.AddTeamMember(t, team, member)

	members, err := svc.Members(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	var memberRow *models.TeamMember
	for i := range members {
		if members[i].UserID == member.ID {
			memberRow = &members[i]
		}
	}
	require.NotNil(t, memberRow)

	// A member removes their own row to leave
	require.NoError(t, svc.RemoveMember(ctx, memberRow.ID, member.ID))

	members, err = svc.Members(ctx, member.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	members, err = svc.Members(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestTeamService_Integration_UpdateName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTeamService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	fixtures.CreateTeam(t, owner, testutil.WithTeamName("Old"))

	team, err := svc.UpdateName(ctx, owner.ID, "New")
	require.NoError(t, err)
	assert.Equal(t, "New", team.Name)

	details, detailsOwner, err := svc.Details(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", details.Name)
	assert.Equal(t, owner.ID, detailsOwner.ID)
}

func TestTeamService_Integration_DetailsUnaffiliated(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTeamService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)

	_, _, err := svc.Details(ctx, user.ID)
	assert.ErrorIs(t, err, services.ErrTeamNotFound)
}
