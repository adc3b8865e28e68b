package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
	"github.com/meetly/planner-api/pkg/errors"
)

type outboxRepository struct {
	store *Store
}

func NewOutboxRepository(store *Store) repository.OutboxRepository {
	return &outboxRepository{store: store}
}

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	event.Status = model.OutboxStatusPending

	copied := *event
	if err := r.store.outbox.Add(event.ID.String(), &copied, 0); err != nil {
		return fmt.Errorf("failed to enqueue outbox event: %w", err)
	}
	return nil
}

func (r *outboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	items := r.store.outbox.Items()
	events := make([]*model.OutboxEvent, 0)
	for _, item := range items {
		event := item.Object.(*model.OutboxEvent)
		if event.Status == model.OutboxStatusPending {
			copied := *event
			events = append(events, &copied)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.Before(events[j].CreatedAt) })
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (r *outboxRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	v, ok := r.store.outbox.Get(id.String())
	if !ok {
		return errors.NewNotFound("outbox event", nil)
	}
	copied := *v.(*model.OutboxEvent)
	copied.Status = status
	copied.ErrorMessage = errMsg
	now := time.Now()
	if status == model.OutboxStatusProcessed {
		copied.ProcessedAt = &now
	}
	r.store.outbox.Set(id.String(), &copied, 0)
	return nil
}
