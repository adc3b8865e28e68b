package member

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/meetly/planner-api/internal/handler"
	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
	"github.com/meetly/planner-api/internal/service/member"
)

type Handler struct {
	service    member.MemberService
	outboxRepo repository.OutboxRepository
}

func NewHandler(service member.MemberService, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	members := r.Group("/members")
	{
		members.GET("", h.ListMembers)
		members.POST("", h.CreateMember)
	}
}

func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.service.ListMembers(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *Handler) CreateMember(c *gin.Context) {
	var req model.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateMember(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	if payload, err := json.Marshal(created); err == nil {
		if err := h.outboxRepo.Create(c.Request.Context(), &model.OutboxEvent{
			EventType: "MEMBER_CREATE",
			Payload:   payload,
		}); err != nil {
			log.Error().Err(err).Msg("failed to create outbox event")
		}
	}

	c.JSON(http.StatusCreated, created)
}
