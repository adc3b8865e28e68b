package meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/meetly/planner-api/internal/email"
	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
	"github.com/meetly/planner-api/pkg/emailaddr"
	"github.com/meetly/planner-api/pkg/errors"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// CreateResult is the POST response payload: the created meeting plus the
// delivery outcome of its invitations, if any.
type CreateResult struct {
	Meeting     *model.Meeting
	EmailStatus string
	Warning     string
	Note        string
}

// RespondResult reports a recorded RSVP.
type RespondResult struct {
	MeetingName  string
	InviteeEmail string
	Action       string
}

type MeetingService interface {
	CreateMeeting(ctx context.Context, req *model.CreateMeetingRequest) (*CreateResult, error)
	ListMeetings(ctx context.Context) ([]*model.Meeting, error)
	RespondToMeeting(ctx context.Context, token, action string) (*RespondResult, error)
}

type Service struct {
	repo           repository.MeetingRepository
	patientRepo    repository.PatientDetailRepository
	attachmentRepo repository.AttachmentRepository
	mailer         email.Mailer
}

func NewService(
	repo repository.MeetingRepository,
	patientRepo repository.PatientDetailRepository,
	attachmentRepo repository.AttachmentRepository,
	mailer email.Mailer,
) *Service {
	return &Service{
		repo:           repo,
		patientRepo:    patientRepo,
		attachmentRepo: attachmentRepo,
		mailer:         mailer,
	}
}

func (s *Service) CreateMeeting(ctx context.Context, req *model.CreateMeetingRequest) (*CreateResult, error) {
	name := strings.TrimSpace(req.Name)
	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}
	recurrenceRule := strings.TrimSpace(req.RecurrenceRule)
	recurrenceEnd := strings.TrimSpace(req.RecurrenceEndDate)

	parsed := emailaddr.ParseList(req.InviteeEmail)
	if !parsed.Valid() {
		return nil, errors.NewBadRequest(
			fmt.Sprintf("Invalid invitee email(s): %s", strings.Join(parsed.Invalid, ", ")), nil)
	}

	if name == "" || req.StartsAt == "" || req.ScheduleType == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, errors.NewBadRequest(
			"Meeting name, start date/time, start time, end time and schedule type are required.", nil)
	}

	scheduleType := model.ScheduleType(req.ScheduleType)
	if scheduleType != model.ScheduleTypeOneTime && scheduleType != model.ScheduleTypeRecurring {
		return nil, errors.NewBadRequest("Schedule type must be one-time or recurring.", nil)
	}
	if scheduleType == model.ScheduleTypeRecurring && recurrenceRule == "" {
		return nil, errors.NewBadRequest("Recurrence rule is required for recurring meetings.", nil)
	}

	if _, err := time.Parse(dateLayout, req.StartsAt); err != nil {
		return nil, errors.NewBadRequest(fmt.Sprintf("Invalid date/time: %v", err), err)
	}
	startTime, err := time.Parse(timeLayout, req.StartTime)
	if err != nil {
		return nil, errors.NewBadRequest(fmt.Sprintf("Invalid date/time: %v", err), err)
	}
	endTime, err := time.Parse(timeLayout, req.EndTime)
	if err != nil {
		return nil, errors.NewBadRequest(fmt.Sprintf("Invalid date/time: %v", err), err)
	}
	if !endTime.After(startTime) {
		return nil, errors.NewBadRequest("Meeting end time must be after start time.", nil)
	}

	meeting := &model.Meeting{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:         name,
		StartsAt:     req.StartsAt,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Timezone:     timezone,
		ScheduleType: scheduleType,
		Invitees:     strings.Join(parsed.Emails, ", "),
	}
	if scheduleType == model.ScheduleTypeRecurring {
		meeting.RecurrenceRule = &recurrenceRule
		if recurrenceEnd != "" {
			meeting.RecurrenceEndDate = &recurrenceEnd
		}
	}

	if err := s.repo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	result := &CreateResult{Meeting: meeting}

	if len(parsed.Emails) == 0 {
		if s.mailer.Enabled() {
			result.Note = "No invitee emails provided, no invitations sent"
		} else {
			result.Note = "EMAIL_ENABLED is false, invitations were not sent"
		}
		return result, nil
	}

	invites := make([]email.Invite, 0, len(parsed.Emails))
	for _, addr := range parsed.Emails {
		response := &model.InviteeResponse{
			ID:        uuid.New(),
			MeetingID: meeting.ID,
			Email:     addr,
			Status:    model.RSVPStatusPending,
			Token:     uuid.NewString(),
			CreatedAt: time.Now(),
		}
		if err := s.repo.CreateInviteeResponse(ctx, response); err != nil {
			return nil, fmt.Errorf("failed to record invitee: %w", err)
		}
		invites = append(invites, email.Invite{Email: addr, Token: response.Token})
	}

	if !s.mailer.Enabled() {
		result.Note = "EMAIL_ENABLED is false, invitations were not sent"
		return result, nil
	}

	// A delivery failure never rolls back the created meeting; it is
	// reported as a warning alongside the created entity.
	if err := s.mailer.SendInvites(ctx, invites, meeting); err != nil {
		log.Error().Err(err).Str("meeting_id", meeting.ID.String()).Msg("failed to send invite emails")
		result.Warning = fmt.Sprintf("Meeting created but email sending failed: %v", err)
		return result, nil
	}
	result.EmailStatus = "Invitation emails sent successfully"
	return result, nil
}

// ListMeetings composes the full wire shape: embedded patients, attachment
// aggregates and the invitee response map.
func (s *Service) ListMeetings(ctx context.Context) ([]*model.Meeting, error) {
	meetings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	for _, meeting := range meetings {
		patients, err := s.patientRepo.ListByMeeting(ctx, meeting.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list meeting patients: %w", err)
		}
		meeting.Patients = make([]model.MeetingPatient, 0, len(patients))
		for _, p := range patients {
			meeting.Patients = append(meeting.Patients, model.MeetingPatient{
				PatientDetailID:     p.ID,
				PatientName:         p.PatientName,
				MedicalRecordNumber: p.MedicalRecordNumber,
				PatientDateOfBirth:  p.PatientDateOfBirth,
				DoctorName:          p.DoctorName,
				DepartmentName:      p.DepartmentName,
				MeetingAgendaNote:   p.MeetingAgendaNote,
				PatientDescription:  p.PatientDescription,
			})
		}

		attachments, err := s.attachmentRepo.ListByMeeting(ctx, meeting.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list meeting attachments: %w", err)
		}
		meeting.AttachmentCount = len(attachments)
		names := make([]string, 0, len(attachments))
		for _, a := range attachments {
			names = append(names, a.FileName)
		}
		meeting.AttachmentNames = strings.Join(names, ", ")

		responses, err := s.repo.ListInviteeResponses(ctx, meeting.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list invitee responses: %w", err)
		}
		meeting.Responses = make(map[string]model.RSVPStatus, len(responses))
		for _, r := range responses {
			if _, exists := meeting.Responses[r.Email]; !exists {
				meeting.Responses[r.Email] = r.Status
			}
		}
	}
	return meetings, nil
}

// actionStatus maps response-link actions to recorded RSVP statuses.
var actionStatus = map[string]model.RSVPStatus{
	"accept":    model.RSVPStatusAccepted,
	"decline":   model.RSVPStatusDeclined,
	"tentative": model.RSVPStatusTentative,
}

func (s *Service) RespondToMeeting(ctx context.Context, token, action string) (*RespondResult, error) {
	status, ok := actionStatus[strings.ToLower(action)]
	if !ok {
		return nil, errors.NewBadRequest("Invalid action. Must be accept, decline, or tentative.", nil)
	}

	response, err := s.repo.GetInviteeResponseByToken(ctx, token)
	if err != nil {
		return nil, &errors.AppError{
			Code:    errors.ErrNotFound,
			Message: "Invalid or expired response token.",
			Err:     err,
		}
	}

	if err := s.repo.UpdateInviteeResponseStatus(ctx, token, status, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to update invitee response: %w", err)
	}

	meetingName := "Unknown Meeting"
	if meeting, err := s.repo.Get(ctx, response.MeetingID); err == nil {
		meetingName = meeting.Name
	}

	return &RespondResult{
		MeetingName:  meetingName,
		InviteeEmail: response.Email,
		Action:       strings.ToLower(action),
	}, nil
}
