package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/meetly/planner-api/internal/config"
	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/pkg/metrics"
)

// Invite pairs an invitee address with the response token embedded in the
// invitation's action links.
type Invite struct {
	Email string
	Token string
}

// Mailer delivers meeting invitations.
type Mailer interface {
	Enabled() bool
	SendInvites(ctx context.Context, invites []Invite, meeting *model.Meeting) error
}

type smtpMailer struct {
	cfg     config.SMTPConfig
	baseURL string
	dial    func(m ...*gomail.Message) error
	metrics *metrics.Metrics
}

// newDialer maps the SMTP settings onto gomail. Port 465 carries
// implicit SSL unless SMTP_USE_TLS turns encryption off; other ports
// upgrade with STARTTLS when the server offers it.
func newDialer(cfg config.SMTPConfig) *gomail.Dialer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	dialer.SSL = cfg.UseTLS && cfg.Port == 465
	return dialer
}

// NewSMTPMailer builds a Mailer delivering over SMTP via gomail. A nil
// metrics set disables delivery counters.
func NewSMTPMailer(cfg config.SMTPConfig, baseURL string, m *metrics.Metrics) Mailer {
	dialer := newDialer(cfg)
	return &smtpMailer{
		cfg:     cfg,
		baseURL: baseURL,
		dial:    dialer.DialAndSend,
		metrics: m,
	}
}

func (m *smtpMailer) Enabled() bool { return true }

func (m *smtpMailer) SendInvites(ctx context.Context, invites []Invite, meeting *model.Meeting) error {
	for _, invite := range invites {
		msg := gomail.NewMessage()
		msg.SetHeader("Subject", fmt.Sprintf("Meeting Invite: %s", meeting.Name))
		msg.SetHeader("From", m.cfg.From)
		msg.SetHeader("To", invite.Email)
		msg.SetBody("text/plain", m.plainBody(invite, meeting))
		msg.AddAlternative("text/html", m.htmlBody(invite, meeting))

		if err := m.dial(msg); err != nil {
			if m.metrics != nil {
				m.metrics.InvitesFailed.Inc()
			}
			return fmt.Errorf("failed to send invite to %s: %w", invite.Email, err)
		}
		if m.metrics != nil {
			m.metrics.InvitesSent.Inc()
		}
	}
	return nil
}

func (m *smtpMailer) actionLink(token, action string) string {
	return fmt.Sprintf("%s/api/respond-to-meeting/%s?action=%s", m.baseURL, token, action)
}

func (m *smtpMailer) plainBody(invite Invite, meeting *model.Meeting) string {
	return fmt.Sprintf(`You are invited to a meeting.

Meeting: %s
Date: %s
Time: %s - %s (%s)
Schedule: %s
Recurrence: %s
Recurrence End: %s

--- RESPOND TO THIS INVITATION ---

ACCEPT:    %s
DECLINE:   %s
TENTATIVE: %s
`,
		meeting.Name,
		meeting.StartsAt,
		meeting.StartTime, meeting.EndTime, meeting.Timezone,
		meeting.ScheduleType,
		orNA(meeting.RecurrenceRule),
		orNA(meeting.RecurrenceEndDate),
		m.actionLink(invite.Token, "accept"),
		m.actionLink(invite.Token, "decline"),
		m.actionLink(invite.Token, "tentative"),
	)
}

func (m *smtpMailer) htmlBody(invite Invite, meeting *model.Meeting) string {
	return fmt.Sprintf(`<html><body>
<h1>You have been invited to a meeting</h1>
<p><strong>%s</strong><br/>%s, %s - %s (%s)</p>
<p>
<a href="%s" style="color:#27ae60">Accept</a> |
<a href="%s" style="color:#f39c12">Tentative</a> |
<a href="%s" style="color:#e74c3c">Decline</a>
</p>
<p>Your response will be recorded and displayed in the meeting list.</p>
</body></html>`,
		meeting.Name,
		meeting.StartsAt, meeting.StartTime, meeting.EndTime, meeting.Timezone,
		m.actionLink(invite.Token, "accept"),
		m.actionLink(invite.Token, "tentative"),
		m.actionLink(invite.Token, "decline"),
	)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

type disabledMailer struct{}

// NewDisabledMailer returns the no-op Mailer used when EMAIL_ENABLED is
// off: invitations are recorded but nothing is delivered.
func NewDisabledMailer() Mailer { return disabledMailer{} }

func (disabledMailer) Enabled() bool { return false }

func (disabledMailer) SendInvites(context.Context, []Invite, *model.Meeting) error {
	return nil
}
