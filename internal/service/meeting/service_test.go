package meeting

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetly/planner-api/internal/email"
	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository/memory"
	"github.com/meetly/planner-api/pkg/errors"
)

type fakeMailer struct {
	enabled bool
	fail    error
	invites []email.Invite
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) SendInvites(_ context.Context, invites []email.Invite, _ *model.Meeting) error {
	if m.fail != nil {
		return m.fail
	}
	m.invites = append(m.invites, invites...)
	return nil
}

func newService(mailer email.Mailer) (*Service, *memory.Store) {
	store := memory.NewStore()
	return NewService(
		memory.NewMeetingRepository(store),
		memory.NewPatientDetailRepository(store),
		memory.NewAttachmentRepository(store),
		mailer,
	), store
}

func validRequest() *model.CreateMeetingRequest {
	return &model.CreateMeetingRequest{
		Name:         "Tumor Board",
		StartsAt:     "2026-09-15",
		StartTime:    "10:00",
		EndTime:      "11:00",
		Timezone:     "UTC",
		ScheduleType: "one-time",
	}
}

func TestCreateMeeting(t *testing.T) {
	svc, _ := newService(&fakeMailer{enabled: false})

	result, err := svc.CreateMeeting(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "Tumor Board", result.Meeting.Name)
	assert.Equal(t, model.ScheduleTypeOneTime, result.Meeting.ScheduleType)
	assert.NotEqual(t, "", result.Meeting.ID.String())
	assert.Empty(t, result.Warning)
}

func TestCreateMeetingValidation(t *testing.T) {
	svc, _ := newService(&fakeMailer{})

	cases := []struct {
		name    string
		mutate  func(*model.CreateMeetingRequest)
		message string
	}{
		{
			name:    "missing name",
			mutate:  func(r *model.CreateMeetingRequest) { r.Name = "  " },
			message: "Meeting name, start date/time, start time, end time and schedule type are required.",
		},
		{
			name:    "missing start time",
			mutate:  func(r *model.CreateMeetingRequest) { r.StartTime = "" },
			message: "Meeting name, start date/time, start time, end time and schedule type are required.",
		},
		{
			name:    "bad schedule type",
			mutate:  func(r *model.CreateMeetingRequest) { r.ScheduleType = "fortnightly" },
			message: "Schedule type must be one-time or recurring.",
		},
		{
			name:    "recurring without rule",
			mutate:  func(r *model.CreateMeetingRequest) { r.ScheduleType = "recurring" },
			message: "Recurrence rule is required for recurring meetings.",
		},
		{
			name:    "end before start",
			mutate:  func(r *model.CreateMeetingRequest) { r.StartTime = "11:00"; r.EndTime = "10:00" },
			message: "Meeting end time must be after start time.",
		},
		{
			name:    "end equals start",
			mutate:  func(r *model.CreateMeetingRequest) { r.EndTime = "10:00" },
			message: "Meeting end time must be after start time.",
		},
		{
			name:    "invalid invitees",
			mutate:  func(r *model.CreateMeetingRequest) { r.InviteeEmail = "good@x.com, nope" },
			message: "Invalid invitee email(s): nope",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			_, err := svc.CreateMeeting(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.IsBadRequest(err))
			assert.Equal(t, tc.message, err.(*errors.AppError).Message)
		})
	}
}

func TestCreateMeetingInvalidDate(t *testing.T) {
	svc, _ := newService(&fakeMailer{})

	req := validRequest()
	req.StartsAt = "15/09/2026"

	_, err := svc.CreateMeeting(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.IsBadRequest(err))
	assert.Contains(t, err.(*errors.AppError).Message, "Invalid date/time")
}

func TestCreateMeetingDefaultsTimezone(t *testing.T) {
	svc, _ := newService(&fakeMailer{})

	req := validRequest()
	req.Timezone = "  "

	result, err := svc.CreateMeeting(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "UTC", result.Meeting.Timezone)
}

func TestCreateMeetingNormalizesInvitees(t *testing.T) {
	mailer := &fakeMailer{enabled: true}
	svc, _ := newService(mailer)

	req := validRequest()
	req.InviteeEmail = "B@x.com, a@x.com, b@x.com"

	result, err := svc.CreateMeeting(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "b@x.com, a@x.com", result.Meeting.Invitees)
	assert.Equal(t, "Invitation emails sent successfully", result.EmailStatus)
	require.Len(t, mailer.invites, 2)
	for _, invite := range mailer.invites {
		assert.NotEmpty(t, invite.Token)
	}
}

func TestCreateMeetingMailerDisabled(t *testing.T) {
	svc, _ := newService(&fakeMailer{enabled: false})

	req := validRequest()
	req.InviteeEmail = "a@x.com"

	result, err := svc.CreateMeeting(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "EMAIL_ENABLED is false, invitations were not sent", result.Note)
}

func TestCreateMeetingMailerDisabledNoInvitees(t *testing.T) {
	svc, _ := newService(&fakeMailer{enabled: false})

	result, err := svc.CreateMeeting(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "EMAIL_ENABLED is false, invitations were not sent", result.Note)
}

func TestCreateMeetingMailerFailureWarnsNotFails(t *testing.T) {
	svc, _ := newService(&fakeMailer{enabled: true, fail: fmt.Errorf("smtp refused")})

	req := validRequest()
	req.InviteeEmail = "a@x.com"

	result, err := svc.CreateMeeting(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, result.Warning, "Meeting created but email sending failed")

	// The meeting itself survives the delivery failure.
	meetings, err := svc.ListMeetings(context.Background())
	require.NoError(t, err)
	assert.Len(t, meetings, 1)
}

func TestCreateMeetingNoInviteesNote(t *testing.T) {
	svc, _ := newService(&fakeMailer{enabled: true})

	result, err := svc.CreateMeeting(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "No invitee emails provided, no invitations sent", result.Note)
}

func TestListMeetingsComposesResponses(t *testing.T) {
	svc, _ := newService(&fakeMailer{enabled: true})

	req := validRequest()
	req.InviteeEmail = "b@x.com, a@x.com"
	_, err := svc.CreateMeeting(context.Background(), req)
	require.NoError(t, err)

	meetings, err := svc.ListMeetings(context.Background())
	require.NoError(t, err)
	require.Len(t, meetings, 1)

	assert.Equal(t, map[string]model.RSVPStatus{
		"a@x.com": model.RSVPStatusPending,
		"b@x.com": model.RSVPStatusPending,
	}, meetings[0].Responses)
	assert.Empty(t, meetings[0].Patients)
	assert.Zero(t, meetings[0].AttachmentCount)
}

func TestListMeetingsNewestFirst(t *testing.T) {
	svc, _ := newService(&fakeMailer{})

	early := validRequest()
	early.Name = "Early"
	early.StartsAt = "2026-09-01"
	late := validRequest()
	late.Name = "Late"
	late.StartsAt = "2026-09-20"

	_, err := svc.CreateMeeting(context.Background(), early)
	require.NoError(t, err)
	_, err = svc.CreateMeeting(context.Background(), late)
	require.NoError(t, err)

	meetings, err := svc.ListMeetings(context.Background())
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "Late", meetings[0].Name)
	assert.Equal(t, "Early", meetings[1].Name)
}

func TestRespondToMeeting(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewMeetingRepository(store)
	svc := NewService(repo, memory.NewPatientDetailRepository(store), memory.NewAttachmentRepository(store), &fakeMailer{enabled: true})

	req := validRequest()
	req.InviteeEmail = "a@x.com"
	created, err := svc.CreateMeeting(context.Background(), req)
	require.NoError(t, err)

	responses, err := repo.ListInviteeResponses(context.Background(), created.Meeting.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	token := responses[0].Token

	result, err := svc.RespondToMeeting(context.Background(), token, "ACCEPT")
	require.NoError(t, err)
	assert.Equal(t, "Tumor Board", result.MeetingName)
	assert.Equal(t, "a@x.com", result.InviteeEmail)
	assert.Equal(t, "accept", result.Action)

	updated, err := repo.ListInviteeResponses(context.Background(), created.Meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RSVPStatusAccepted, updated[0].Status)
	assert.NotNil(t, updated[0].RespondedAt)
}

func TestRespondToMeetingInvalidAction(t *testing.T) {
	svc, _ := newService(&fakeMailer{})

	_, err := svc.RespondToMeeting(context.Background(), "token", "maybe")
	require.Error(t, err)
	assert.True(t, errors.IsBadRequest(err))
	assert.Equal(t, "Invalid action. Must be accept, decline, or tentative.", err.(*errors.AppError).Message)
}

func TestRespondToMeetingUnknownToken(t *testing.T) {
	svc, _ := newService(&fakeMailer{})

	_, err := svc.RespondToMeeting(context.Background(), "unknown", "accept")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, "Invalid or expired response token.", err.(*errors.AppError).Message)
}
