package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meetly/planner-api/internal/model"
)

type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	Get(ctx context.Context, id uuid.UUID) (*model.Team, error)
	List(ctx context.Context) ([]*model.Team, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	List(ctx context.Context) ([]*model.Member, error)
}

type MeetingRepository interface {
	Create(ctx context.Context, meeting *model.Meeting) error
	Get(ctx context.Context, id uuid.UUID) (*model.Meeting, error)
	List(ctx context.Context) ([]*model.Meeting, error)

	CreateInviteeResponse(ctx context.Context, response *model.InviteeResponse) error
	ListInviteeResponses(ctx context.Context, meetingID uuid.UUID) ([]*model.InviteeResponse, error)
	GetInviteeResponseByToken(ctx context.Context, token string) (*model.InviteeResponse, error)
	UpdateInviteeResponseStatus(ctx context.Context, token string, status model.RSVPStatus, respondedAt time.Time) error
}

type PatientDetailRepository interface {
	Create(ctx context.Context, detail *model.PatientDetail) error
	List(ctx context.Context) ([]*model.PatientDetail, error)
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*model.PatientDetail, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *model.Attachment) error
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*model.Attachment, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
}
