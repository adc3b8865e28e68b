package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
	"github.com/meetly/planner-api/pkg/errors"
)

type teamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) repository.TeamRepository {
	return &teamRepository{store: store}
}

func (r *teamRepository) Create(ctx context.Context, team *model.Team) error {
	copied := *team
	if err := r.store.teams.Add(team.ID.String(), &copied, 0); err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *teamRepository) Get(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	v, ok := r.store.teams.Get(id.String())
	if !ok {
		return nil, errors.NewNotFound("team", nil)
	}
	copied := *v.(*model.Team)
	return &copied, nil
}

func (r *teamRepository) List(ctx context.Context) ([]*model.Team, error) {
	items := r.store.teams.Items()
	teams := make([]*model.Team, 0, len(items))
	for _, item := range items {
		copied := *item.Object.(*model.Team)
		teams = append(teams, &copied)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}
