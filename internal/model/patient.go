package model

import (
	"github.com/google/uuid"
)

// PatientDetail is an independent record attached to a meeting by ID.
// MeetingName is composed at read time.
type PatientDetail struct {
	Base
	MeetingID           uuid.UUID `json:"meetingId"`
	MeetingName         string    `json:"meetingName"`
	MedicalRecordNumber string    `json:"medicalRecordNumber"`
	PatientName         string    `json:"patientName"`
	PatientDateOfBirth  string    `json:"patientDateOfBirth"`
	PatientDescription  *string   `json:"patientDescription"`
	DoctorName          string    `json:"doctorName"`
	DepartmentName      string    `json:"departmentName"`
	MeetingAgendaNote   *string   `json:"meetingAgendaNote"`
}

type CreatePatientDetailRequest struct {
	MeetingID           string             `json:"meetingId"`
	MedicalRecordNumber string             `json:"medicalRecordNumber"`
	PatientName         string             `json:"patientName"`
	PatientDateOfBirth  string             `json:"patientDateOfBirth"`
	PatientDescription  string             `json:"patientDescription"`
	DoctorName          string             `json:"doctorName"`
	DepartmentName      string             `json:"departmentName"`
	MeetingAgendaNote   string             `json:"meetingAgendaNote"`
	Attachments         []AttachmentUpload `json:"attachments"`
}

// AttachmentUpload is the submission-only shape: FileData carries the
// inline base64 payload (the content after the data-URL comma).
type AttachmentUpload struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileData string `json:"fileData"`
}

// Attachment is the stored form; only counts and names are redisplayed.
type Attachment struct {
	Base
	MeetingID           uuid.UUID `json:"meetingId"`
	MedicalRecordNumber string    `json:"medicalRecordNumber"`
	DoctorName          string    `json:"doctorName"`
	DepartmentName      string    `json:"departmentName"`
	FileName            string    `json:"fileName"`
	FileType            *string   `json:"fileType"`
	FileSize            int       `json:"fileSize"`
	FileData            []byte    `json:"-"`
}
