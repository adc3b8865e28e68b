package meeting

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/meetly/planner-api/internal/handler"
	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
	"github.com/meetly/planner-api/internal/service/meeting"
)

type Handler struct {
	service    meeting.MeetingService
	outboxRepo repository.OutboxRepository
}

func NewHandler(service meeting.MeetingService, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	meetings := r.Group("/meetings")
	{
		meetings.GET("", h.ListMeetings)
		meetings.POST("", h.CreateMeeting)
	}
	r.GET("/respond-to-meeting/:token", h.RespondToMeeting)
}

func (h *Handler) ListMeetings(c *gin.Context) {
	meetings, err := h.service.ListMeetings(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meetings)
}

func (h *Handler) CreateMeeting(c *gin.Context) {
	var req model.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result, err := h.service.CreateMeeting(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	if payload, err := json.Marshal(result.Meeting); err == nil {
		if err := h.outboxRepo.Create(c.Request.Context(), &model.OutboxEvent{
			EventType: "MEETING_CREATE",
			Payload:   payload,
		}); err != nil {
			log.Error().Err(err).Msg("failed to create outbox event")
		}
	}

	body := gin.H{
		"id":   result.Meeting.ID,
		"name": result.Meeting.Name,
	}
	switch {
	case result.EmailStatus != "":
		body["email_status"] = result.EmailStatus
	case result.Warning != "":
		body["warning"] = result.Warning
	case result.Note != "":
		body["note"] = result.Note
	}
	c.JSON(http.StatusCreated, body)
}

func (h *Handler) RespondToMeeting(c *gin.Context) {
	token := c.Param("token")
	action := c.Query("action")

	result, err := h.service.RespondToMeeting(c.Request.Context(), token, action)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Your response (" + result.Action + ") has been recorded successfully!",
		"meeting":       result.MeetingName,
		"invitee_email": result.InviteeEmail,
		"action":        result.Action,
	})
}
