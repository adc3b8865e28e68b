// Package client is a typed consumer of the planner REST API. Every call
// issues a single JSON request; failures surface immediately with the
// server-provided message when one is present.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/meetly/planner-api/internal/model"
)

const defaultTimeout = 30 * time.Second

// RequestError is a non-2xx API response. Message carries the body's
// "error" field, or a generic fallback when the body has none.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// requestJSON performs one request and decodes the response body into out.
// A nil body means no request payload; a nil out discards the response.
func (c *Client) requestJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	reqErr := &RequestError{
		StatusCode: resp.StatusCode,
		Message:    "request failed",
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		reqErr.Message = body.Error
	}
	return reqErr
}

func (c *Client) Teams(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	if err := c.requestJSON(ctx, http.MethodGet, "/api/teams", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *Client) CreateTeam(ctx context.Context, req *model.CreateTeamRequest) (*model.Team, error) {
	var team model.Team
	if err := c.requestJSON(ctx, http.MethodPost, "/api/teams", req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) Members(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	if err := c.requestJSON(ctx, http.MethodGet, "/api/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) CreateMember(ctx context.Context, req *model.CreateMemberRequest) (*model.Member, error) {
	var member model.Member
	if err := c.requestJSON(ctx, http.MethodPost, "/api/members", req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *Client) Meetings(ctx context.Context) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if err := c.requestJSON(ctx, http.MethodGet, "/api/meetings", nil, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

// CreateMeetingResult is the creation acknowledgement. EmailStatus, Warning
// and Note report invitation delivery and are informational only.
type CreateMeetingResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	EmailStatus string `json:"email_status,omitempty"`
	Warning     string `json:"warning,omitempty"`
	Note        string `json:"note,omitempty"`
}

func (c *Client) CreateMeeting(ctx context.Context, req *model.CreateMeetingRequest) (*CreateMeetingResult, error) {
	var result CreateMeetingResult
	if err := c.requestJSON(ctx, http.MethodPost, "/api/meetings", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) PatientDetails(ctx context.Context) ([]model.PatientDetail, error) {
	var details []model.PatientDetail
	if err := c.requestJSON(ctx, http.MethodGet, "/api/patient-details", nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (c *Client) CreatePatientDetail(ctx context.Context, req *model.CreatePatientDetailRequest) (*model.PatientDetail, error) {
	var detail model.PatientDetail
	if err := c.requestJSON(ctx, http.MethodPost, "/api/patient-details", req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
