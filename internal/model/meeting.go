package model

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleType string

const (
	ScheduleTypeOneTime   ScheduleType = "one-time"
	ScheduleTypeRecurring ScheduleType = "recurring"
)

type RSVPStatus string

const (
	RSVPStatusPending   RSVPStatus = "pending"
	RSVPStatusAccepted  RSVPStatus = "accepted"
	RSVPStatusDeclined  RSVPStatus = "declined"
	RSVPStatusTentative RSVPStatus = "tentative"
)

// MeetingPatient is a patient record as embedded in a meeting listing.
type MeetingPatient struct {
	PatientDetailID     uuid.UUID `json:"patientDetailId"`
	PatientName         string    `json:"patientName"`
	MedicalRecordNumber string    `json:"medicalRecordNumber"`
	PatientDateOfBirth  string    `json:"patientDateOfBirth"`
	DoctorName          string    `json:"doctorName"`
	DepartmentName      string    `json:"departmentName"`
	MeetingAgendaNote   *string   `json:"meetingAgendaNote"`
	PatientDescription  *string   `json:"patientDescription"`
}

// Meeting is the composed wire shape returned by list endpoints. Patients,
// attachment aggregates and responses are derived from associated records.
type Meeting struct {
	Base
	Name              string                `json:"name"`
	StartsAt          string                `json:"startsAt"`
	StartTime         string                `json:"startTime"`
	EndTime           string                `json:"endTime"`
	Timezone          string                `json:"timezone"`
	ScheduleType      ScheduleType          `json:"scheduleType"`
	RecurrenceRule    *string               `json:"recurrenceRule"`
	RecurrenceEndDate *string               `json:"recurrenceEndDate"`
	Invitees          string                `json:"invitees"`
	AttachmentCount   int                   `json:"attachmentCount"`
	AttachmentNames   string                `json:"attachmentNames"`
	Patients          []MeetingPatient      `json:"patients"`
	Responses         map[string]RSVPStatus `json:"responses"`
}

type CreateMeetingRequest struct {
	Name              string `json:"name"`
	StartsAt          string `json:"startsAt"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	Timezone          string `json:"timezone"`
	ScheduleType      string `json:"scheduleType"`
	RecurrenceRule    string `json:"recurrenceRule"`
	RecurrenceEndDate string `json:"recurrenceEndDate"`
	InviteeEmail      string `json:"inviteeEmail"`
}

// InviteeResponse tracks one invitee's RSVP for a meeting. The token is
// the capability embedded in invitation action links.
type InviteeResponse struct {
	ID          uuid.UUID  `json:"id"`
	MeetingID   uuid.UUID  `json:"meetingId"`
	Email       string     `json:"inviteeEmail"`
	Status      RSVPStatus `json:"status"`
	Token       string     `json:"-"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
