package patient

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
	"github.com/meetly/planner-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type PatientDetailService interface {
	CreatePatientDetail(ctx context.Context, req *model.CreatePatientDetailRequest) (*model.PatientDetail, error)
	ListPatientDetails(ctx context.Context) ([]*model.PatientDetail, error)
}

type Service struct {
	repo           repository.PatientDetailRepository
	meetingRepo    repository.MeetingRepository
	attachmentRepo repository.AttachmentRepository
}

func NewService(
	repo repository.PatientDetailRepository,
	meetingRepo repository.MeetingRepository,
	attachmentRepo repository.AttachmentRepository,
) *Service {
	return &Service{
		repo:           repo,
		meetingRepo:    meetingRepo,
		attachmentRepo: attachmentRepo,
	}
}

func (s *Service) CreatePatientDetail(ctx context.Context, req *model.CreatePatientDetailRequest) (*model.PatientDetail, error) {
	meetingID, err := uuid.Parse(strings.TrimSpace(req.MeetingID))
	if err != nil || meetingID == uuid.Nil {
		return nil, errors.NewBadRequest("Meeting ID is required.", nil)
	}

	mrn := strings.TrimSpace(req.MedicalRecordNumber)
	patientName := strings.TrimSpace(req.PatientName)
	doctorName := strings.TrimSpace(req.DoctorName)
	departmentName := strings.TrimSpace(req.DepartmentName)
	if mrn == "" || patientName == "" || req.PatientDateOfBirth == "" || doctorName == "" || departmentName == "" {
		return nil, errors.NewBadRequest(
			"Medical record number, patient name/date of birth, doctor name and department are required.", nil)
	}

	if _, err := time.Parse(dateLayout, req.PatientDateOfBirth); err != nil {
		return nil, errors.NewBadRequest(fmt.Sprintf("Invalid date/time: %v", err), err)
	}

	if _, err := s.meetingRepo.Get(ctx, meetingID); err != nil {
		return nil, errors.NewBadRequest("Meeting ID not found.", err)
	}

	detail := &model.PatientDetail{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		MeetingID:           meetingID,
		MedicalRecordNumber: mrn,
		PatientName:         patientName,
		PatientDateOfBirth:  req.PatientDateOfBirth,
		DoctorName:          doctorName,
		DepartmentName:      departmentName,
	}
	if desc := strings.TrimSpace(req.PatientDescription); desc != "" {
		detail.PatientDescription = &desc
	}
	if note := strings.TrimSpace(req.MeetingAgendaNote); note != "" {
		detail.MeetingAgendaNote = &note
	}

	if err := s.repo.Create(ctx, detail); err != nil {
		return nil, fmt.Errorf("failed to create patient detail: %w", err)
	}

	for _, upload := range req.Attachments {
		fileName := strings.TrimSpace(upload.FileName)
		if fileName == "" || upload.FileData == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(upload.FileData)
		if err != nil {
			return nil, errors.NewBadRequest(fmt.Sprintf("Invalid attachment data for %s.", fileName), err)
		}
		attachment := &model.Attachment{
			Base: model.Base{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			MeetingID:           meetingID,
			MedicalRecordNumber: mrn,
			DoctorName:          doctorName,
			DepartmentName:      departmentName,
			FileName:            fileName,
			FileSize:            len(data),
			FileData:            data,
		}
		if fileType := strings.TrimSpace(upload.FileType); fileType != "" {
			attachment.FileType = &fileType
		}
		if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
	}

	return detail, nil
}

// ListPatientDetails composes the meeting name for each record.
func (s *Service) ListPatientDetails(ctx context.Context) ([]*model.PatientDetail, error) {
	details, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient details: %w", err)
	}
	for _, detail := range details {
		if meeting, err := s.meetingRepo.Get(ctx, detail.MeetingID); err == nil {
			detail.MeetingName = meeting.Name
		}
	}
	return details, nil
}
