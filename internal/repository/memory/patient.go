package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
)

type patientDetailRepository struct {
	store *Store
}

func NewPatientDetailRepository(store *Store) repository.PatientDetailRepository {
	return &patientDetailRepository{store: store}
}

func (r *patientDetailRepository) Create(ctx context.Context, detail *model.PatientDetail) error {
	copied := *detail
	if err := r.store.patients.Add(detail.ID.String(), &copied, 0); err != nil {
		return fmt.Errorf("failed to create patient detail: %w", err)
	}
	return nil
}

func (r *patientDetailRepository) List(ctx context.Context) ([]*model.PatientDetail, error) {
	items := r.store.patients.Items()
	details := make([]*model.PatientDetail, 0, len(items))
	for _, item := range items {
		copied := *item.Object.(*model.PatientDetail)
		details = append(details, &copied)
	}
	// Newest first.
	sort.Slice(details, func(i, j int) bool {
		if !details[i].CreatedAt.Equal(details[j].CreatedAt) {
			return details[i].CreatedAt.After(details[j].CreatedAt)
		}
		return details[i].ID.String() > details[j].ID.String()
	})
	return details, nil
}

func (r *patientDetailRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*model.PatientDetail, error) {
	items := r.store.patients.Items()
	details := make([]*model.PatientDetail, 0)
	for _, item := range items {
		detail := item.Object.(*model.PatientDetail)
		if detail.MeetingID == meetingID {
			copied := *detail
			details = append(details, &copied)
		}
	}
	sort.Slice(details, func(i, j int) bool { return details[i].PatientName < details[j].PatientName })
	return details, nil
}

type attachmentRepository struct {
	store *Store
}

func NewAttachmentRepository(store *Store) repository.AttachmentRepository {
	return &attachmentRepository{store: store}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *model.Attachment) error {
	copied := *attachment
	if err := r.store.attachments.Add(attachment.ID.String(), &copied, 0); err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return nil
}

func (r *attachmentRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*model.Attachment, error) {
	items := r.store.attachments.Items()
	attachments := make([]*model.Attachment, 0)
	for _, item := range items {
		attachment := item.Object.(*model.Attachment)
		if attachment.MeetingID == meetingID {
			copied := *attachment
			attachments = append(attachments, &copied)
		}
	}
	sort.Slice(attachments, func(i, j int) bool { return attachments[i].FileName < attachments[j].FileName })
	return attachments, nil
}
