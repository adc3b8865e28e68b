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

type meetingRepository struct {
	store *Store
}

func NewMeetingRepository(store *Store) repository.MeetingRepository {
	return &meetingRepository{store: store}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *model.Meeting) error {
	copied := *meeting
	if err := r.store.meetings.Add(meeting.ID.String(), &copied, 0); err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

func (r *meetingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	v, ok := r.store.meetings.Get(id.String())
	if !ok {
		return nil, errors.NewNotFound("meeting", nil)
	}
	copied := *v.(*model.Meeting)
	return &copied, nil
}

func (r *meetingRepository) List(ctx context.Context) ([]*model.Meeting, error) {
	items := r.store.meetings.Items()
	meetings := make([]*model.Meeting, 0, len(items))
	for _, item := range items {
		copied := *item.Object.(*model.Meeting)
		meetings = append(meetings, &copied)
	}
	// Newest first: start date, then start time.
	sort.Slice(meetings, func(i, j int) bool {
		if meetings[i].StartsAt != meetings[j].StartsAt {
			return meetings[i].StartsAt > meetings[j].StartsAt
		}
		return meetings[i].StartTime > meetings[j].StartTime
	})
	return meetings, nil
}

func (r *meetingRepository) CreateInviteeResponse(ctx context.Context, response *model.InviteeResponse) error {
	copied := *response
	if err := r.store.responses.Add(response.ID.String(), &copied, 0); err != nil {
		return fmt.Errorf("failed to create invitee response: %w", err)
	}
	return nil
}

func (r *meetingRepository) ListInviteeResponses(ctx context.Context, meetingID uuid.UUID) ([]*model.InviteeResponse, error) {
	items := r.store.responses.Items()
	responses := make([]*model.InviteeResponse, 0)
	for _, item := range items {
		resp := item.Object.(*model.InviteeResponse)
		if resp.MeetingID == meetingID {
			copied := *resp
			responses = append(responses, &copied)
		}
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].Email < responses[j].Email })
	return responses, nil
}

func (r *meetingRepository) GetInviteeResponseByToken(ctx context.Context, token string) (*model.InviteeResponse, error) {
	for _, item := range r.store.responses.Items() {
		resp := item.Object.(*model.InviteeResponse)
		if resp.Token == token {
			copied := *resp
			return &copied, nil
		}
	}
	return nil, errors.NewNotFound("invitee response", nil)
}

func (r *meetingRepository) UpdateInviteeResponseStatus(ctx context.Context, token string, status model.RSVPStatus, respondedAt time.Time) error {
	for key, item := range r.store.responses.Items() {
		resp := item.Object.(*model.InviteeResponse)
		if resp.Token == token {
			copied := *resp
			copied.Status = status
			copied.RespondedAt = &respondedAt
			r.store.responses.Set(key, &copied, 0)
			return nil
		}
	}
	return errors.NewNotFound("invitee response", nil)
}
