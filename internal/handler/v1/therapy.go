package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayursutra/ayursutra/internal/domain/therapy"
	"github.com/ayursutra/ayursutra/internal/service"
)

type TherapyHandler struct {
	svc *service.TherapyService
}

func NewTherapyHandler(svc *service.TherapyService) *TherapyHandler {
	return &TherapyHandler{svc: svc}
}

type createTherapyRequest struct {
	PatientID       uuid.UUID           `json:"patient_id" binding:"required"`
	Name            string              `json:"name" binding:"required"`
	Type            therapy.TherapyType `json:"type" binding:"required"`
	ScheduledDate   string              `json:"scheduled_date" binding:"required"`
	ScheduledTime   string              `json:"scheduled_time" binding:"required"`
	DurationMinutes int                 `json:"duration_minutes"`
	Precautions     []string            `json:"precautions"`
	Notes           string              `json:"notes"`
	Status          therapy.Status      `json:"status"`
}

func (h *TherapyHandler) Create(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}

	var req createTherapyRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.svc.CreateTherapy(c.Request.Context(), claims, &therapy.CreateTherapyCommand{
		PatientID:       req.PatientID,
		Name:            req.Name,
		Type:            req.Type,
		ScheduledDate:   req.ScheduledDate,
		ScheduledTime:   req.ScheduledTime,
		DurationMinutes: req.DurationMinutes,
		Precautions:     req.Precautions,
		Notes:           req.Notes,
		Status:          req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, t)
}

func (h *TherapyHandler) Get(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	t, err := h.svc.GetTherapy(c.Request.Context(), claims, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, t)
}

// List returns all therapies, or one calendar day when ?date=YYYY-MM-DD is
// given.
func (h *TherapyHandler) List(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}

	if date := c.Query("date"); date != "" {
		therapies, err := h.svc.ListTherapiesByDate(c.Request.Context(), claims, date)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, therapies)
		return
	}

	therapies, err := h.svc.ListTherapies(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, therapies)
}

type updateTherapyRequest struct {
	Name            *string              `json:"name"`
	Type            *therapy.TherapyType `json:"type"`
	ScheduledDate   *string              `json:"scheduled_date"`
	ScheduledTime   *string              `json:"scheduled_time"`
	DurationMinutes *int                 `json:"duration_minutes"`
	Precautions     *[]string            `json:"precautions"`
	Notes           *string              `json:"notes"`
	Status          *therapy.Status      `json:"status"`
}

func (h *TherapyHandler) Update(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateTherapyRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.svc.UpdateTherapy(c.Request.Context(), claims, id, &therapy.UpdateTherapyCommand{
		Name:            req.Name,
		Type:            req.Type,
		ScheduledDate:   req.ScheduledDate,
		ScheduledTime:   req.ScheduledTime,
		DurationMinutes: req.DurationMinutes,
		Precautions:     req.Precautions,
		Notes:           req.Notes,
		Status:          req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, t)
}

func (h *TherapyHandler) Delete(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteTherapy(c.Request.Context(), claims, id); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": id})
}
