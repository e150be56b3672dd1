package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/domain/patient"
	"github.com/ayursutra/ayursutra/internal/service"
)

type PatientHandler struct {
	svc *service.PatientService
}

func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

type createPatientRequest struct {
	Name           string         `json:"name" binding:"required"`
	Email          string         `json:"email" binding:"required"`
	Phone          string         `json:"phone"`
	PrimaryDosha   domain.Dosha   `json:"primary_dosha" binding:"required"`
	SecondaryDosha *domain.Dosha  `json:"secondary_dosha"`
	Age            *int           `json:"age"`
	Gender         *domain.Gender `json:"gender"`
	Address        string         `json:"address"`
	MedicalHistory string         `json:"medical_history"`
	Allergies      string         `json:"allergies"`
	Status         patient.Status `json:"status"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}

	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.CreatePatient(c.Request.Context(), claims, &patient.CreatePatientCommand{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		PrimaryDosha:   req.PrimaryDosha,
		SecondaryDosha: req.SecondaryDosha,
		Age:            req.Age,
		Gender:         req.Gender,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
		Allergies:      req.Allergies,
		Status:         req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, p)
}

func (h *PatientHandler) Get(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetPatient(c.Request.Context(), claims, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, p)
}

func (h *PatientHandler) List(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}

	patients, err := h.svc.ListPatients(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, patients)
}

type updatePatientRequest struct {
	Name           *string         `json:"name"`
	Email          *string         `json:"email"`
	Phone          *string         `json:"phone"`
	PrimaryDosha   *domain.Dosha   `json:"primary_dosha"`
	SecondaryDosha *domain.Dosha   `json:"secondary_dosha"`
	Age            *int            `json:"age"`
	Gender         *domain.Gender  `json:"gender"`
	Address        *string         `json:"address"`
	MedicalHistory *string         `json:"medical_history"`
	Allergies      *string         `json:"allergies"`
	Status         *patient.Status `json:"status"`
}

func (h *PatientHandler) Update(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.UpdatePatient(c.Request.Context(), claims, id, &patient.UpdatePatientCommand{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		PrimaryDosha:   req.PrimaryDosha,
		SecondaryDosha: req.SecondaryDosha,
		Age:            req.Age,
		Gender:         req.Gender,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
		Allergies:      req.Allergies,
		Status:         req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, p)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePatient(c.Request.Context(), claims, id); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": id})
}
