package view

import (
	"strings"

	"github.com/meetly/planner-api/internal/model"
)

// Filters are the three free-text meeting filters. Empty fields match
// everything.
type Filters struct {
	Name    string
	Patient string
	MRN     string
}

func (f Filters) normalized() Filters {
	return Filters{
		Name:    strings.ToLower(strings.TrimSpace(f.Name)),
		Patient: strings.ToLower(strings.TrimSpace(f.Patient)),
		MRN:     strings.ToLower(strings.TrimSpace(f.MRN)),
	}
}

func (f Filters) Empty() bool {
	n := f.normalized()
	return n.Name == "" && n.Patient == "" && n.MRN == ""
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), substr)
}

func patientMatches(p model.MeetingPatient, patient, mrn string) bool {
	return containsFold(p.PatientName, patient) && containsFold(p.MedicalRecordNumber, mrn)
}

// FilterMeetings derives a filtered view of meetings. A meeting is kept
// when its name matches and, if a patient or MRN filter is set, at least
// one of its patients matches both. Kept meetings have their patient
// sublist narrowed by the patient/MRN filters alone; the name filter
// never affects which patients are shown. The input is never mutated.
func FilterMeetings(meetings []model.Meeting, f Filters) []model.Meeting {
	n := f.normalized()

	result := make([]model.Meeting, 0, len(meetings))
	for _, meeting := range meetings {
		if !containsFold(meeting.Name, n.Name) {
			continue
		}

		if n.Patient == "" && n.MRN == "" {
			result = append(result, meeting)
			continue
		}

		matched := make([]model.MeetingPatient, 0, len(meeting.Patients))
		for _, p := range meeting.Patients {
			if patientMatches(p, n.Patient, n.MRN) {
				matched = append(matched, p)
			}
		}
		if len(matched) == 0 {
			continue
		}

		kept := meeting
		kept.Patients = matched
		result = append(result, kept)
	}
	return result
}

// RSVPSummary counts invitee responses per status. Statuses outside the
// known set are counted as pending so the four buckets always sum to the
// number of responses.
type RSVPSummary struct {
	Accepted  int
	Declined  int
	Tentative int
	Pending   int
}

func (s RSVPSummary) Total() int {
	return s.Accepted + s.Declined + s.Tentative + s.Pending
}

func SummarizeResponses(responses map[string]model.RSVPStatus) RSVPSummary {
	var summary RSVPSummary
	for _, status := range responses {
		switch status {
		case model.RSVPStatusAccepted:
			summary.Accepted++
		case model.RSVPStatusDeclined:
			summary.Declined++
		case model.RSVPStatusTentative:
			summary.Tentative++
		default:
			summary.Pending++
		}
	}
	return summary
}
