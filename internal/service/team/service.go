package team

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
	"github.com/meetly/planner-api/pkg/errors"
)

type TeamService interface {
	CreateTeam(ctx context.Context, req *model.CreateTeamRequest) (*model.Team, error)
	ListTeams(ctx context.Context) ([]*model.Team, error)
}

type Service struct {
	repo repository.TeamRepository
}

func NewService(repo repository.TeamRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateTeam(ctx context.Context, req *model.CreateTeamRequest) (*model.Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.NewBadRequest("Team name is required.", nil)
	}

	team := &model.Team{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: name,
	}

	if err := s.repo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *Service) ListTeams(ctx context.Context) ([]*model.Team, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}
