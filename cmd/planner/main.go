// Command planner is a terminal consumer of the planner API: it fetches
// every collection, applies the optional meeting filters and prints the
// rendered fragments.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/meetly/planner-api/internal/app"
	"github.com/meetly/planner-api/internal/view"
	"github.com/meetly/planner-api/pkg/client"
)

type stdoutSurface struct {
	teams          string
	members        string
	meetings       string
	patientDetails string
}

func (s *stdoutSurface) SetTeams(markup string)          { s.teams = markup }
func (s *stdoutSurface) SetTeamOptions(string)           {}
func (s *stdoutSurface) SetMembers(markup string)        { s.members = markup }
func (s *stdoutSurface) SetInviteeCheckboxes(string)     {}
func (s *stdoutSurface) SetMeetings(markup string)       { s.meetings = markup }
func (s *stdoutSurface) SetPatientDetails(markup string) { s.patientDetails = markup }
func (s *stdoutSurface) SetRecurringFieldsVisible(bool)  {}

func (s *stdoutSurface) ShowMessage(text string, isError bool) {
	if isError {
		fmt.Fprintln(os.Stderr, text)
		return
	}
	fmt.Println(text)
}

func main() {
	var (
		baseURL       = flag.String("url", "http://localhost:3000", "planner API base URL")
		nameFilter    = flag.String("name", "", "filter meetings by name")
		patientFilter = flag.String("patient", "", "filter meetings by patient name")
		mrnFilter     = flag.String("mrn", "", "filter meetings by medical record number")
		timeout       = flag.Duration("timeout", 30*time.Second, "request timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	surface := &stdoutSurface{}
	controller := app.NewController(client.New(*baseURL), surface)

	if err := controller.Bootstrap(ctx); err != nil {
		os.Exit(1)
	}

	controller.ApplyFilters(view.Filters{
		Name:    *nameFilter,
		Patient: *patientFilter,
		MRN:     *mrnFilter,
	})

	fmt.Println("Teams:")
	fmt.Println(surface.teams)
	fmt.Println("Members:")
	fmt.Println(surface.members)
	fmt.Println("Meetings:")
	fmt.Println(surface.meetings)
	fmt.Println("Patient details:")
	fmt.Println(surface.patientDetails)
}
