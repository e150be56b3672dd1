package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayursutra/ayursutra/internal/domain/feedback"
	"github.com/ayursutra/ayursutra/internal/service"
)

type FeedbackHandler struct {
	svc *service.FeedbackService
}

func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

type createFeedbackRequest struct {
	TherapyID        uuid.UUID `json:"therapy_id" binding:"required"`
	PatientID        uuid.UUID `json:"patient_id"`
	Rating           int       `json:"rating" binding:"required"`
	Comment          string    `json:"comment" binding:"required"`
	WasFlagged       bool      `json:"was_flagged"`
	FollowUpRequired bool      `json:"follow_up_required"`
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}

	var req createFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	f, err := h.svc.CreateFeedback(c.Request.Context(), claims, &feedback.CreateFeedbackCommand{
		TherapyID:        req.TherapyID,
		PatientID:        req.PatientID,
		Rating:           req.Rating,
		Comment:          req.Comment,
		WasFlagged:       req.WasFlagged,
		FollowUpRequired: req.FollowUpRequired,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, f)
}

func (h *FeedbackHandler) Get(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	f, err := h.svc.GetFeedback(c.Request.Context(), claims, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, f)
}

func (h *FeedbackHandler) List(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}

	entries, err := h.svc.ListFeedback(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, entries)
}

type updateFeedbackRequest struct {
	Rating           *int    `json:"rating"`
	Comment          *string `json:"comment"`
	WasFlagged       *bool   `json:"was_flagged"`
	FollowUpRequired *bool   `json:"follow_up_required"`
}

func (h *FeedbackHandler) Update(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	f, err := h.svc.UpdateFeedback(c.Request.Context(), claims, id, &feedback.UpdateFeedbackCommand{
		Rating:           req.Rating,
		Comment:          req.Comment,
		WasFlagged:       req.WasFlagged,
		FollowUpRequired: req.FollowUpRequired,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, f)
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteFeedback(c.Request.Context(), claims, id); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": id})
}
