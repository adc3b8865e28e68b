package member

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository/memory"
	teamService "github.com/meetly/planner-api/internal/service/team"
	"github.com/meetly/planner-api/pkg/errors"
)

func newFixture(t *testing.T) (*Service, []uuid.UUID) {
	t.Helper()
	store := memory.NewStore()
	teamRepo := memory.NewTeamRepository(store)
	svc := NewService(memory.NewMemberRepository(store), teamRepo)

	teams := teamService.NewService(teamRepo)
	ids := make([]uuid.UUID, 0, 2)
	for _, name := range []string{"Oncology", "Surgery"} {
		team, err := teams.CreateTeam(context.Background(), &model.CreateTeamRequest{Name: name})
		require.NoError(t, err)
		ids = append(ids, team.ID)
	}
	return svc, ids
}

func TestCreateMember(t *testing.T) {
	svc, ids := newFixture(t)

	member, err := svc.CreateMember(context.Background(), &model.CreateMemberRequest{
		FullName: "Jane Doe",
		Email:    "Jane@X.com",
		TeamIDs:  []string{ids[0].String()},
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", member.Email)
	assert.Equal(t, []uuid.UUID{ids[0]}, member.TeamIDs)
}

func TestCreateMemberRequiresNameAndEmail(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.CreateMember(context.Background(), &model.CreateMemberRequest{FullName: "Jane Doe"})
	require.Error(t, err)
	assert.True(t, errors.IsBadRequest(err))
	assert.Equal(t, "Member full name and email are required.", err.(*errors.AppError).Message)
}

func TestCreateMemberRejectsMalformedTeamID(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.CreateMember(context.Background(), &model.CreateMemberRequest{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		TeamIDs:  []string{"not-a-uuid"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsBadRequest(err))
	assert.Contains(t, err.(*errors.AppError).Message, "Invalid team ID")
}

func TestCreateMemberRejectsUnknownTeam(t *testing.T) {
	svc, _ := newFixture(t)
	unknown := uuid.NewString()

	_, err := svc.CreateMember(context.Background(), &model.CreateMemberRequest{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		TeamIDs:  []string{unknown},
	})
	require.Error(t, err)
	assert.True(t, errors.IsBadRequest(err))
	assert.Contains(t, err.(*errors.AppError).Message, "not found")
}

func TestListMembersComposesTeamsDisplay(t *testing.T) {
	svc, ids := newFixture(t)

	_, err := svc.CreateMember(context.Background(), &model.CreateMemberRequest{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		TeamIDs:  []string{ids[1].String(), ids[0].String()},
	})
	require.NoError(t, err)
	_, err = svc.CreateMember(context.Background(), &model.CreateMemberRequest{
		FullName: "John Roe",
		Email:    "john@x.com",
	})
	require.NoError(t, err)

	members, err := svc.ListMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)

	// Sorted by full name; team names alphabetical regardless of
	// selection order.
	assert.Equal(t, "Jane Doe", members[0].FullName)
	assert.Equal(t, "Oncology, Surgery", members[0].Teams)
	assert.Equal(t, "John Roe", members[1].FullName)
	assert.Equal(t, "", members[1].Teams)
}
