package team

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/meetly/planner-api/internal/handler"
	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
	"github.com/meetly/planner-api/internal/service/team"
)

type Handler struct {
	service    team.TeamService
	outboxRepo repository.OutboxRepository
}

func NewHandler(service team.TeamService, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	teams := r.Group("/teams")
	{
		teams.GET("", h.ListTeams)
		teams.POST("", h.CreateTeam)
	}
}

func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.service.ListTeams(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *Handler) CreateTeam(c *gin.Context) {
	var req model.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	if payload, err := json.Marshal(created); err == nil {
		if err := h.outboxRepo.Create(c.Request.Context(), &model.OutboxEvent{
			EventType: "TEAM_CREATE",
			Payload:   payload,
		}); err != nil {
			log.Error().Err(err).Msg("failed to create outbox event")
		}
	}

	c.JSON(http.StatusCreated, created)
}
