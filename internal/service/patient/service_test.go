package patient

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetly/planner-api/internal/email"
	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
	"github.com/meetly/planner-api/internal/repository/memory"
	meetingService "github.com/meetly/planner-api/internal/service/meeting"
	"github.com/meetly/planner-api/pkg/errors"
)

func newFixture(t *testing.T) (*Service, repository.AttachmentRepository, *model.Meeting) {
	t.Helper()
	store := memory.NewStore()
	meetingRepo := memory.NewMeetingRepository(store)
	attachmentRepo := memory.NewAttachmentRepository(store)
	svc := NewService(memory.NewPatientDetailRepository(store), meetingRepo, attachmentRepo)

	meetings := meetingService.NewService(
		meetingRepo,
		memory.NewPatientDetailRepository(store),
		attachmentRepo,
		email.NewDisabledMailer(),
	)
	created, err := meetings.CreateMeeting(context.Background(), &model.CreateMeetingRequest{
		Name:         "Tumor Board",
		StartsAt:     "2026-09-15",
		StartTime:    "10:00",
		EndTime:      "11:00",
		ScheduleType: "one-time",
	})
	require.NoError(t, err)
	return svc, attachmentRepo, created.Meeting
}

func validRequest(meetingID string) *model.CreatePatientDetailRequest {
	return &model.CreatePatientDetailRequest{
		MeetingID:           meetingID,
		MedicalRecordNumber: "MRN1",
		PatientName:         "Jane Doe",
		PatientDateOfBirth:  "1980-01-01",
		DoctorName:          "Smith",
		DepartmentName:      "Oncology",
	}
}

func TestCreatePatientDetail(t *testing.T) {
	svc, _, meeting := newFixture(t)

	req := validRequest(meeting.ID.String())
	req.PatientDescription = " follow-up "
	detail, err := svc.CreatePatientDetail(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, meeting.ID, detail.MeetingID)
	assert.Equal(t, "Jane Doe", detail.PatientName)
	require.NotNil(t, detail.PatientDescription)
	assert.Equal(t, "follow-up", *detail.PatientDescription)
	assert.Nil(t, detail.MeetingAgendaNote)
}

func TestCreatePatientDetailRequiresMeetingID(t *testing.T) {
	svc, _, _ := newFixture(t)

	for _, id := range []string{"", "  ", "not-a-uuid"} {
		_, err := svc.CreatePatientDetail(context.Background(), validRequest(id))
		require.Error(t, err)
		assert.True(t, errors.IsBadRequest(err))
		assert.Equal(t, "Meeting ID is required.", err.(*errors.AppError).Message)
	}
}

func TestCreatePatientDetailRequiredFields(t *testing.T) {
	svc, _, meeting := newFixture(t)

	req := validRequest(meeting.ID.String())
	req.PatientName = "  "
	_, err := svc.CreatePatientDetail(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t,
		"Medical record number, patient name/date of birth, doctor name and department are required.",
		err.(*errors.AppError).Message)
}

func TestCreatePatientDetailInvalidDateOfBirth(t *testing.T) {
	svc, _, meeting := newFixture(t)

	req := validRequest(meeting.ID.String())
	req.PatientDateOfBirth = "01/01/1980"
	_, err := svc.CreatePatientDetail(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.(*errors.AppError).Message, "Invalid date/time")
}

func TestCreatePatientDetailUnknownMeeting(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.CreatePatientDetail(context.Background(),
		validRequest("b2f9a7d4-3c7e-4f7a-9a1e-2f6d8c5b4a30"))
	require.Error(t, err)
	assert.Equal(t, "Meeting ID not found.", err.(*errors.AppError).Message)
}

func TestCreatePatientDetailStoresAttachments(t *testing.T) {
	svc, attachmentRepo, meeting := newFixture(t)

	req := validRequest(meeting.ID.String())
	req.Attachments = []model.AttachmentUpload{
		{
			FileName: "scan.png",
			FileType: "image/png",
			FileData: base64.StdEncoding.EncodeToString([]byte("pixels")),
		},
		{FileName: "", FileData: "ignored"},
		{FileName: "empty.txt", FileData: ""},
	}

	_, err := svc.CreatePatientDetail(context.Background(), req)
	require.NoError(t, err)

	stored, err := attachmentRepo.ListByMeeting(context.Background(), meeting.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "scan.png", stored[0].FileName)
	assert.Equal(t, len("pixels"), stored[0].FileSize)
}

func TestCreatePatientDetailRejectsBadAttachmentData(t *testing.T) {
	svc, _, meeting := newFixture(t)

	req := validRequest(meeting.ID.String())
	req.Attachments = []model.AttachmentUpload{
		{FileName: "scan.png", FileData: "!!not base64!!"},
	}

	_, err := svc.CreatePatientDetail(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Invalid attachment data for scan.png.", err.(*errors.AppError).Message)
}

func TestListPatientDetailsComposesMeetingName(t *testing.T) {
	svc, _, meeting := newFixture(t)

	_, err := svc.CreatePatientDetail(context.Background(), validRequest(meeting.ID.String()))
	require.NoError(t, err)

	details, err := svc.ListPatientDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Tumor Board", details[0].MeetingName)
}
