package patient

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/meetly/planner-api/internal/handler"
	"github.com/meetly/planner-api/internal/model"
	"github.com/meetly/planner-api/internal/repository"
	"github.com/meetly/planner-api/internal/service/patient"
)

type Handler struct {
	service    patient.PatientDetailService
	outboxRepo repository.OutboxRepository
}

func NewHandler(service patient.PatientDetailService, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	details := r.Group("/patient-details")
	{
		details.GET("", h.ListPatientDetails)
		details.POST("", h.CreatePatientDetail)
	}
}

func (h *Handler) ListPatientDetails(c *gin.Context) {
	details, err := h.service.ListPatientDetails(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *Handler) CreatePatientDetail(c *gin.Context) {
	var req model.CreatePatientDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreatePatientDetail(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	if payload, err := json.Marshal(created); err == nil {
		if err := h.outboxRepo.Create(c.Request.Context(), &model.OutboxEvent{
			EventType: "PATIENT_DETAIL_CREATE",
			Payload:   payload,
		}); err != nil {
			log.Error().Err(err).Msg("failed to create outbox event")
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          created.ID,
		"meetingId":   created.MeetingID,
		"patientName": created.PatientName,
	})
}
