package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ayursutra/ayursutra/internal/domain/profile"
	"github.com/ayursutra/ayursutra/internal/service"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}

	p, err := h.svc.GetProfile(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, p)
}

type updateProfileRequest struct {
	ClinicName       *string `json:"clinic_name"`
	PractitionerName *string `json:"practitioner_name"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	Specialization   *string `json:"specialization"`
	ExperienceYears  *int    `json:"experience_years"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.UpdateProfile(c.Request.Context(), claims, &profile.UpdateProfileCommand{
		ClinicName:       req.ClinicName,
		PractitionerName: req.PractitionerName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		Specialization:   req.Specialization,
		ExperienceYears:  req.ExperienceYears,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, p)
}
