package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetly/planner-api/internal/email"
	"github.com/meetly/planner-api/internal/handler"
	meetingHandler "github.com/meetly/planner-api/internal/handler/meeting"
	memberHandler "github.com/meetly/planner-api/internal/handler/member"
	patientHandler "github.com/meetly/planner-api/internal/handler/patient"
	teamHandler "github.com/meetly/planner-api/internal/handler/team"
	"github.com/meetly/planner-api/internal/middleware"
	"github.com/meetly/planner-api/internal/repository/memory"
	meetingService "github.com/meetly/planner-api/internal/service/meeting"
	memberService "github.com/meetly/planner-api/internal/service/member"
	patientService "github.com/meetly/planner-api/internal/service/patient"
	teamService "github.com/meetly/planner-api/internal/service/team"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	teamRepo := memory.NewTeamRepository(store)
	memberRepo := memory.NewMemberRepository(store)
	meetingRepo := memory.NewMeetingRepository(store)
	patientRepo := memory.NewPatientDetailRepository(store)
	attachmentRepo := memory.NewAttachmentRepository(store)
	outboxRepo := memory.NewOutboxRepository(store)

	mailer := email.NewDisabledMailer()
	teamSvc := teamService.NewService(teamRepo)
	memberSvc := memberService.NewService(memberRepo, teamRepo)
	meetingSvc := meetingService.NewService(meetingRepo, patientRepo, attachmentRepo, mailer)
	patientSvc := patientService.NewService(patientRepo, meetingRepo, attachmentRepo)

	registry := prometheus.NewRegistry()
	r := NewRouter(
		teamHandler.NewHandler(teamSvc, outboxRepo),
		memberHandler.NewHandler(memberSvc, outboxRepo),
		meetingHandler.NewHandler(meetingSvc, outboxRepo),
		patientHandler.NewHandler(patientSvc, outboxRepo),
		handler.NewHandler(registry),
		RouterConfig{
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsPrefix:  "planner_test",
			Registry:       registry,
		},
	)
	r.Setup()

	srv := httptest.NewServer(r.Engine())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

func TestTeamEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, created := postJSON(t, srv.URL+"/api/teams", map[string]string{"name": "Oncology"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Oncology", created["name"])
	assert.NotEmpty(t, created["id"])

	var teams []map[string]any
	listResp := getJSON(t, srv.URL+"/api/teams", &teams)
	assert.Equal(t, http.StatusOK, listResp.StatusCode)
	require.Len(t, teams, 1)
	assert.Equal(t, "Oncology", teams[0]["name"])
}

func TestCreateTeamValidationError(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/teams", map[string]string{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Team name is required.", body["error"])
}

func TestMeetingFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, created := postJSON(t, srv.URL+"/api/meetings", map[string]any{
		"name":         "Tumor Board",
		"startsAt":     "2026-09-15",
		"startTime":    "10:00",
		"endTime":      "11:00",
		"timezone":     "UTC",
		"scheduleType": "one-time",
		"inviteeEmail": "a@x.com, b@x.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Tumor Board", created["name"])
	assert.Equal(t, "EMAIL_ENABLED is false, invitations were not sent", created["note"])
	meetingID := created["id"].(string)

	var meetings []map[string]any
	getJSON(t, srv.URL+"/api/meetings", &meetings)
	require.Len(t, meetings, 1)
	assert.Equal(t, meetingID, meetings[0]["id"])

	responses := meetings[0]["responses"].(map[string]any)
	assert.Equal(t, "pending", responses["a@x.com"])
	assert.Equal(t, "pending", responses["b@x.com"])
}

func TestMeetingValidationError(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/meetings", map[string]any{
		"name":         "Planning",
		"startsAt":     "2026-09-15",
		"startTime":    "10:00",
		"endTime":      "11:00",
		"scheduleType": "one-time",
		"inviteeEmail": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid invitee email(s): not-an-email", body["error"])
}

func TestRespondToMeetingUnknownToken(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]any
	resp := getJSON(t, srv.URL+"/api/respond-to-meeting/bogus?action=accept", &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Invalid or expired response token.", body["error"])
}

func TestRespondToMeetingInvalidAction(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]any
	resp := getJSON(t, srv.URL+"/api/respond-to-meeting/bogus?action=maybe", &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid action. Must be accept, decline, or tentative.", body["error"])
}

func TestPatientDetailFlow(t *testing.T) {
	srv := newTestServer(t)

	_, meeting := postJSON(t, srv.URL+"/api/meetings", map[string]any{
		"name":         "Tumor Board",
		"startsAt":     "2026-09-15",
		"startTime":    "10:00",
		"endTime":      "11:00",
		"scheduleType": "one-time",
	})
	meetingID := meeting["id"].(string)

	resp, detail := postJSON(t, srv.URL+"/api/patient-details", map[string]any{
		"meetingId":           meetingID,
		"medicalRecordNumber": "MRN1",
		"patientName":         "Jane Doe",
		"patientDateOfBirth":  "1980-01-01",
		"doctorName":          "Smith",
		"departmentName":      "Oncology",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Jane Doe", detail["patientName"])

	var details []map[string]any
	getJSON(t, srv.URL+"/api/patient-details", &details)
	require.Len(t, details, 1)
	assert.Equal(t, "Tumor Board", details[0]["meetingName"])

	// The meeting listing now embeds the patient.
	var meetings []map[string]any
	getJSON(t, srv.URL+"/api/meetings", &meetings)
	require.Len(t, meetings, 1)
	patients := meetings[0]["patients"].([]any)
	require.Len(t, patients, 1)
	assert.Equal(t, "Jane Doe", patients[0].(map[string]any)["patientName"])
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health/live")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpointExposesRequestCounters(t *testing.T) {
	srv := newTestServer(t)

	var teams []map[string]any
	getJSON(t, srv.URL+"/api/teams", &teams)

	resp, err := http.Get(srv.URL + "/api/health/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "planner_test_requests_total")
	assert.Contains(t, string(body), "planner_test_request_duration_seconds")
}
