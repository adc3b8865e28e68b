package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
)

type memberRepository struct {
	store *Store
}

func NewMemberRepository(store *Store) repository.MemberRepository {
	return &memberRepository{store: store}
}

func (r *memberRepository) Create(ctx context.Context, member *model.Member) error {
	copied := *member
	copied.TeamIDs = append([]uuid.UUID{}, member.TeamIDs...)
	if err := r.store.members.Add(member.ID.String(), &copied, 0); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *memberRepository) List(ctx context.Context) ([]*model.Member, error) {
	items := r.store.members.Items()
	members := make([]*model.Member, 0, len(items))
	for _, item := range items {
		copied := *item.Object.(*model.Member)
		members = append(members, &copied)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].FullName < members[j].FullName })
	return members, nil
}
