// Package view derives UI fragments from server collections. Every
// renderer is a pure function of its input and escapes entity fields
// before embedding them in markup.
package view

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/meetly/planner-api/internal/model"
)

const (
	colorAccepted  = "#047857"
	colorTentative = "#b45309"
	colorDeclined  = "#b91c1c"
	colorPending   = "#6b7280"
)

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func TeamList(teams []model.Team) string {
	var b strings.Builder
	for _, team := range teams {
		fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(team.Name))
	}
	return b.String()
}

// TeamOptions renders the team multi-select used by the member form.
func TeamOptions(teams []model.Team) string {
	var b strings.Builder
	for _, team := range teams {
		fmt.Fprintf(&b, `<option value="%s">%s</option>`,
			team.ID, html.EscapeString(team.Name))
	}
	return b.String()
}

func MemberList(members []model.Member) string {
	var b strings.Builder
	for _, member := range members {
		fmt.Fprintf(&b, "<li>%s (%s) - Teams: %s</li>",
			html.EscapeString(member.FullName),
			html.EscapeString(member.Email),
			html.EscapeString(orNone(member.Teams)))
	}
	return b.String()
}

// InviteeCheckboxes renders one labelled checkbox per member for the
// meeting form.
func InviteeCheckboxes(members []model.Member) string {
	var b strings.Builder
	for _, member := range members {
		fmt.Fprintf(&b, `<label><input type="checkbox" value="%s" /> %s (%s)</label>`,
			member.ID,
			html.EscapeString(member.FullName),
			html.EscapeString(member.Email))
	}
	return b.String()
}

func MeetingList(meetings []model.Meeting) string {
	var b strings.Builder
	for _, meeting := range meetings {
		renderMeeting(&b, meeting)
	}
	return b.String()
}

func renderMeeting(b *strings.Builder, meeting model.Meeting) {
	fmt.Fprintf(b, "<li><strong>%s</strong> - %s at %s",
		html.EscapeString(meeting.Name),
		html.EscapeString(string(meeting.ScheduleType)),
		html.EscapeString(meeting.StartsAt))
	if meeting.StartTime != "" && meeting.EndTime != "" {
		fmt.Fprintf(b, " (%s - %s)",
			html.EscapeString(meeting.StartTime), html.EscapeString(meeting.EndTime))
	}
	fmt.Fprintf(b, " (%s)", html.EscapeString(meeting.Timezone))
	if meeting.RecurrenceRule != nil && *meeting.RecurrenceRule != "" {
		fmt.Fprintf(b, " | Rule: %s", html.EscapeString(*meeting.RecurrenceRule))
	}
	if meeting.RecurrenceEndDate != nil && *meeting.RecurrenceEndDate != "" {
		fmt.Fprintf(b, " | Ends: %s", html.EscapeString(*meeting.RecurrenceEndDate))
	}

	fmt.Fprintf(b, "<br/>Invitees: %s", html.EscapeString(orNone(meeting.Invitees)))

	if meeting.AttachmentCount > 0 {
		fmt.Fprintf(b, "<br/>Attachments: %d (%s)",
			meeting.AttachmentCount, html.EscapeString(meeting.AttachmentNames))
	}

	renderResponses(b, meeting.Responses)
	renderPatients(b, meeting.Patients)

	b.WriteString("</li>")
}

func renderResponses(b *strings.Builder, responses map[string]model.RSVPStatus) {
	if len(responses) == 0 {
		return
	}

	summary := SummarizeResponses(responses)
	fmt.Fprintf(b, `<br/>RSVPs: <span style="color:%s">%d accepted</span>, `+
		`<span style="color:%s">%d tentative</span>, `+
		`<span style="color:%s">%d declined</span>, `+
		`<span style="color:%s">%d pending</span>`,
		colorAccepted, summary.Accepted,
		colorTentative, summary.Tentative,
		colorDeclined, summary.Declined,
		colorPending, summary.Pending)

	emails := make([]string, 0, len(responses))
	for email := range responses {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	for _, email := range emails {
		fmt.Fprintf(b, `<br/><span style="color:%s">%s: %s</span>`,
			statusColor(responses[email]),
			html.EscapeString(email),
			html.EscapeString(string(responses[email])))
	}
}

func statusColor(status model.RSVPStatus) string {
	switch status {
	case model.RSVPStatusAccepted:
		return colorAccepted
	case model.RSVPStatusDeclined:
		return colorDeclined
	case model.RSVPStatusTentative:
		return colorTentative
	default:
		return colorPending
	}
}

func renderPatients(b *strings.Builder, patients []model.MeetingPatient) {
	if len(patients) == 0 {
		b.WriteString("<br/>Patients: No patients")
		return
	}
	b.WriteString("<br/>Patients:")
	for _, p := range patients {
		fmt.Fprintf(b, "<br/>&nbsp;&nbsp;%s (MRN: %s) - Dr. %s, %s",
			html.EscapeString(p.PatientName),
			html.EscapeString(p.MedicalRecordNumber),
			html.EscapeString(p.DoctorName),
			html.EscapeString(p.DepartmentName))
	}
}

func PatientDetailList(details []model.PatientDetail) string {
	var b strings.Builder
	for _, d := range details {
		fmt.Fprintf(&b, "<li><strong>%s</strong> (MRN: %s) - DOB: %s"+
			"<br/>Doctor: %s | Department: %s"+
			"<br/>Meeting: %s"+
			"<br/>Description: %s | Agenda: %s</li>",
			html.EscapeString(d.PatientName),
			html.EscapeString(d.MedicalRecordNumber),
			html.EscapeString(d.PatientDateOfBirth),
			html.EscapeString(d.DoctorName),
			html.EscapeString(d.DepartmentName),
			html.EscapeString(orNone(d.MeetingName)),
			html.EscapeString(orNA(d.PatientDescription)),
			html.EscapeString(orNA(d.MeetingAgendaNote)))
	}
	return b.String()
}
