package member

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
	"github.com/meetly/planner-api/pkg/errors"
)

type MemberService interface {
	CreateMember(ctx context.Context, req *model.CreateMemberRequest) (*model.Member, error)
	ListMembers(ctx context.Context) ([]*model.Member, error)
}

type Service struct {
	repo     repository.MemberRepository
	teamRepo repository.TeamRepository
}

func NewService(repo repository.MemberRepository, teamRepo repository.TeamRepository) *Service {
	return &Service{repo: repo, teamRepo: teamRepo}
}

func (s *Service) CreateMember(ctx context.Context, req *model.CreateMemberRequest) (*model.Member, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" || email == "" {
		return nil, errors.NewBadRequest("Member full name and email are required.", nil)
	}

	teamIDs := make([]uuid.UUID, 0, len(req.TeamIDs))
	for _, raw := range req.TeamIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.NewBadRequest(fmt.Sprintf("Invalid team ID: %s", raw), err)
		}
		if _, err := s.teamRepo.Get(ctx, id); err != nil {
			return nil, errors.NewBadRequest(fmt.Sprintf("Team %s not found.", raw), err)
		}
		teamIDs = append(teamIDs, id)
	}

	member := &model.Member{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		FullName: fullName,
		Email:    email,
		TeamIDs:  teamIDs,
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

// ListMembers composes the Teams display string from team membership,
// team names sorted alphabetically.
func (s *Service) ListMembers(ctx context.Context) ([]*model.Member, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	names := make(map[uuid.UUID]string, len(teams))
	for _, team := range teams {
		names[team.ID] = team.Name
	}

	for _, member := range members {
		teamNames := make([]string, 0, len(member.TeamIDs))
		for _, id := range member.TeamIDs {
			if name, ok := names[id]; ok {
				teamNames = append(teamNames, name)
			}
		}
		// membership is insertion-ordered; the display string is
		// alphabetical
		sort.Strings(teamNames)
		member.Teams = strings.Join(teamNames, ", ")
	}
	return members, nil
}
