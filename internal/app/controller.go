// Package app coordinates form submission, filtering and re-rendering of
// the planner collections against the REST API.
package app

import (
	"context"
	"strings"
	"sync"

	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/view"
	"github.com/meetly/planner-api/pkg/attachment"
	"github.com/meetly/planner-api/pkg/client"
	"github.com/meetly/planner-api/pkg/emailaddr"
)

// API is the slice of the planner client the controller depends on.
type API interface {
	Teams(ctx context.Context) ([]model.Team, error)
	CreateTeam(ctx context.Context, req *model.CreateTeamRequest) (*model.Team, error)
	Members(ctx context.Context) ([]model.Member, error)
	CreateMember(ctx context.Context, req *model.CreateMemberRequest) (*model.Member, error)
	Meetings(ctx context.Context) ([]model.Meeting, error)
	CreateMeeting(ctx context.Context, req *model.CreateMeetingRequest) (*client.CreateMeetingResult, error)
	PatientDetails(ctx context.Context) ([]model.PatientDetail, error)
	CreatePatientDetail(ctx context.Context, req *model.CreatePatientDetailRequest) (*model.PatientDetail, error)
}

// Surface receives derived markup fragments and status updates. One
// method per entity list keeps the derivation logic independent of any
// presentation technology.
type Surface interface {
	SetTeams(markup string)
	SetTeamOptions(markup string)
	SetMembers(markup string)
	SetInviteeCheckboxes(markup string)
	SetMeetings(markup string)
	SetPatientDetails(markup string)
	SetRecurringFieldsVisible(visible bool)
	ShowMessage(text string, isError bool)
}

// Controller holds the last-fetched collections and the active filters.
// It is driven by a single event loop; no internal locking is needed.
type Controller struct {
	api     API
	surface Surface

	lastMeetings []model.Meeting
	filters      view.Filters
}

func NewController(api API, surface Surface) *Controller {
	return &Controller{
		api:     api,
		surface: surface,
	}
}

// ValidationError is a submission rejected locally, before any request
// was issued.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Bootstrap fetches every collection concurrently and performs the
// initial render. The first fetch failure aborts startup and is surfaced
// as the status message.
func (c *Controller) Bootstrap(ctx context.Context) error {
	var (
		teams    []model.Team
		members  []model.Member
		meetings []model.Meeting
		details  []model.PatientDetail
	)

	errCh := make(chan error, 4)
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		var err error
		if teams, err = c.api.Teams(ctx); err != nil {
			errCh <- err
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if members, err = c.api.Members(ctx); err != nil {
			errCh <- err
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if meetings, err = c.api.Meetings(ctx); err != nil {
			errCh <- err
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if details, err = c.api.PatientDetails(ctx); err != nil {
			errCh <- err
		}
	}()
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		c.surface.ShowMessage(err.Error(), true)
		return err
	}

	c.renderTeams(teams)
	c.renderMembers(members)
	c.setMeetings(meetings)
	c.surface.SetPatientDetails(view.PatientDetailList(details))
	return nil
}

func (c *Controller) renderTeams(teams []model.Team) {
	c.surface.SetTeams(view.TeamList(teams))
	c.surface.SetTeamOptions(view.TeamOptions(teams))
}

func (c *Controller) renderMembers(members []model.Member) {
	c.surface.SetMembers(view.MemberList(members))
	c.surface.SetInviteeCheckboxes(view.InviteeCheckboxes(members))
}

// setMeetings replaces the cached collection and re-renders it through
// the active filters.
func (c *Controller) setMeetings(meetings []model.Meeting) {
	c.lastMeetings = meetings
	c.surface.SetMeetings(view.MeetingList(view.FilterMeetings(c.lastMeetings, c.filters)))
}

func (c *Controller) refreshTeams(ctx context.Context) error {
	teams, err := c.api.Teams(ctx)
	if err != nil {
		return err
	}
	c.renderTeams(teams)
	return nil
}

func (c *Controller) refreshMembers(ctx context.Context) error {
	members, err := c.api.Members(ctx)
	if err != nil {
		return err
	}
	c.renderMembers(members)
	return nil
}

func (c *Controller) refreshMeetings(ctx context.Context) error {
	meetings, err := c.api.Meetings(ctx)
	if err != nil {
		return err
	}
	c.setMeetings(meetings)
	return nil
}

func (c *Controller) refreshPatientDetails(ctx context.Context) error {
	details, err := c.api.PatientDetails(ctx)
	if err != nil {
		return err
	}
	c.surface.SetPatientDetails(view.PatientDetailList(details))
	return nil
}

type TeamForm struct {
	Name string
}

func (c *Controller) SubmitTeam(ctx context.Context, form TeamForm) error {
	if _, err := c.api.CreateTeam(ctx, &model.CreateTeamRequest{Name: form.Name}); err != nil {
		c.surface.ShowMessage(err.Error(), true)
		return err
	}
	if err := c.refreshTeams(ctx); err != nil {
		c.surface.ShowMessage(err.Error(), true)
		return err
	}
	c.surface.ShowMessage("Team created successfully.", false)
	return nil
}

type MemberForm struct {
	FullName string
	Email    string
	TeamIDs  []string
}

func (c *Controller) SubmitMember(ctx context.Context, form MemberForm) error {
	req := &model.CreateMemberRequest{
		FullName: form.FullName,
		Email:    form.Email,
		TeamIDs:  form.TeamIDs,
	}
	if _, err := c.api.CreateMember(ctx, req); err != nil {
		c.surface.ShowMessage(err.Error(), true)
		return err
	}
	if err := c.refreshMembers(ctx); err != nil {
		c.surface.ShowMessage(err.Error(), true)
		return err
	}
	c.surface.ShowMessage("Member added successfully.", false)
	return nil
}

type MeetingForm struct {
	Name              string
	StartsAt          string
	StartTime         string
	EndTime           string
	Timezone          string
	ScheduleType      string
	RecurrenceRule    string
	RecurrenceEndDate string
	// Invitees is the raw comma-separated email text. It is parsed and
	// validated locally before any request is issued.
	Invitees string
}

func (c *Controller) SubmitMeeting(ctx context.Context, form MeetingForm) error {
	parsed := emailaddr.ParseList(form.Invitees)
	if !parsed.Valid() {
		msg := "Invalid invitee email(s): " + strings.Join(parsed.Invalid, ", ")
		c.surface.ShowMessage(msg, true)
		return &ValidationError{Message: msg}
	}

	req := &model.CreateMeetingRequest{
		Name:              form.Name,
		StartsAt:          form.StartsAt,
		StartTime:         form.StartTime,
		EndTime:           form.EndTime,
		Timezone:          form.Timezone,
		ScheduleType:      form.ScheduleType,
		RecurrenceRule:    form.RecurrenceRule,
		RecurrenceEndDate: form.RecurrenceEndDate,
		InviteeEmail:      strings.Join(parsed.Emails, ", "),
	}

	result, err := c.api.CreateMeeting(ctx, req)
	if err != nil {
		c.surface.ShowMessage(err.Error(), true)
		return err
	}

	c.surface.SetRecurringFieldsVisible(false)
	if err := c.refreshMeetings(ctx); err != nil {
		c.surface.ShowMessage(err.Error(), true)
		return err
	}

	msg := "Meeting created successfully."
	if result.Warning != "" {
		msg += " " + result.Warning
	}
	c.surface.ShowMessage(msg, false)
	return nil
}

type PatientDetailForm struct {
	MeetingID           string
	MedicalRecordNumber string
	PatientName         string
	PatientDateOfBirth  string
	PatientDescription  string
	DoctorName          string
	DepartmentName      string
	MeetingAgendaNote   string
	Attachments         []attachment.File
}

func (c *Controller) SubmitPatientDetail(ctx context.Context, form PatientDetailForm) error {
	if strings.TrimSpace(form.MeetingID) == "" {
		c.surface.ShowMessage("Meeting ID is required.", true)
		return &ValidationError{Message: "Meeting ID is required."}
	}

	encoded, err := attachment.EncodeAll(ctx, form.Attachments)
	if err != nil {
		c.surface.ShowMessage(err.Error(), true)
		return err
	}
	uploads := make([]model.AttachmentUpload, len(encoded))
	for i, e := range encoded {
		uploads[i] = model.AttachmentUpload{
			FileName: e.FileName,
			FileType: e.FileType,
			FileData: e.FileData,
		}
	}

	req := &model.CreatePatientDetailRequest{
		MeetingID:           form.MeetingID,
		MedicalRecordNumber: form.MedicalRecordNumber,
		PatientName:         form.PatientName,
		PatientDateOfBirth:  form.PatientDateOfBirth,
		PatientDescription:  form.PatientDescription,
		DoctorName:          form.DoctorName,
		DepartmentName:      form.DepartmentName,
		MeetingAgendaNote:   form.MeetingAgendaNote,
		Attachments:         uploads,
	}
	if _, err := c.api.CreatePatientDetail(ctx, req); err != nil {
		c.surface.ShowMessage(err.Error(), true)
		return err
	}

	if err := c.refreshPatientDetails(ctx); err != nil {
		c.surface.ShowMessage(err.Error(), true)
		return err
	}
	if err := c.refreshMeetings(ctx); err != nil {
		c.surface.ShowMessage(err.Error(), true)
		return err
	}
	c.surface.ShowMessage("Patient details saved successfully.", false)
	return nil
}

// ApplyFilters re-derives the meeting rendering from the cached
// collection. It never re-fetches.
func (c *Controller) ApplyFilters(filters view.Filters) {
	c.filters = filters
	c.surface.SetMeetings(view.MeetingList(view.FilterMeetings(c.lastMeetings, c.filters)))
}

// ClearFilters resets all filter fields and re-renders the unfiltered
// cached collection.
func (c *Controller) ClearFilters() {
	c.ApplyFilters(view.Filters{})
}

// SetScheduleType toggles the recurrence fields. They are visible only
// while the selector reads "recurring".
func (c *Controller) SetScheduleType(value string) {
	c.surface.SetRecurringFieldsVisible(value == string(model.ScheduleTypeRecurring))
}
