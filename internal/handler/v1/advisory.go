package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayursutra/ayursutra/internal/advisory"
)

type AdvisoryHandler struct {
	svc *advisory.Service
}

func NewAdvisoryHandler(svc *advisory.Service) *AdvisoryHandler {
	return &AdvisoryHandler{svc: svc}
}

// Gate refuses advisory requests with 503 when no model credential is
// configured. Mounted ahead of every advisory route.
func (h *AdvisoryHandler) Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.svc.Available() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{
				Error: "advisory service is not configured",
				Code:  "ADVISORY_UNAVAILABLE",
			})
			return
		}
		c.Next()
	}
}

func (h *AdvisoryHandler) Status(c *gin.Context) {
	respondOK(c, gin.H{"available": h.svc.Available()})
}

type doshaAnalysisRequest struct {
	Symptoms       []string `json:"symptoms" binding:"required"`
	Age            *int     `json:"age"`
	Gender         string   `json:"gender"`
	MedicalHistory string   `json:"medical_history"`
	Lifestyle      string   `json:"lifestyle"`
}

func (h *AdvisoryHandler) AnalyzeDosha(c *gin.Context) {
	var req doshaAnalysisRequest
	if !bindJSON(c, &req) {
		return
	}

	result := h.svc.AnalyzeDosha(c.Request.Context(), advisory.DoshaInput{
		Symptoms:       req.Symptoms,
		Age:            req.Age,
		Gender:         req.Gender,
		MedicalHistory: req.MedicalHistory,
		Lifestyle:      req.Lifestyle,
	})

	respondOK(c, result)
}

type treatmentRequest struct {
	Dosha       string   `json:"dosha" binding:"required"`
	Symptoms    []string `json:"symptoms" binding:"required"`
	TherapyType string   `json:"therapy_type"`
}

func (h *AdvisoryHandler) TreatmentRecommendation(c *gin.Context) {
	var req treatmentRequest
	if !bindJSON(c, &req) {
		return
	}

	result := h.svc.GenerateTreatmentRecommendation(c.Request.Context(), req.Dosha, req.Symptoms, req.TherapyType)
	respondOK(c, result)
}

type symptomAnalysisRequest struct {
	Symptoms []string `json:"symptoms" binding:"required"`
}

func (h *AdvisoryHandler) AnalyzeSymptoms(c *gin.Context) {
	var req symptomAnalysisRequest
	if !bindJSON(c, &req) {
		return
	}

	result := h.svc.AnalyzeSymptoms(c.Request.Context(), req.Symptoms)
	respondOK(c, result)
}

type patientInsightsRequest struct {
	Name           string   `json:"name" binding:"required"`
	Age            *int     `json:"age"`
	Dosha          string   `json:"dosha" binding:"required"`
	Symptoms       []string `json:"symptoms"`
	MedicalHistory string   `json:"medical_history"`
	Therapies      []string `json:"therapies"`
	Feedback       string   `json:"feedback"`
}

func (h *AdvisoryHandler) PatientInsights(c *gin.Context) {
	var req patientInsightsRequest
	if !bindJSON(c, &req) {
		return
	}

	result := h.svc.GeneratePatientInsights(c.Request.Context(), advisory.InsightInput{
		Name:           req.Name,
		Age:            req.Age,
		Dosha:          req.Dosha,
		Symptoms:       req.Symptoms,
		MedicalHistory: req.MedicalHistory,
		Therapies:      req.Therapies,
		Feedback:       req.Feedback,
	})

	respondOK(c, result)
}

type precautionsRequest struct {
	TherapyType    string `json:"therapy_type" binding:"required"`
	Dosha          string `json:"dosha" binding:"required"`
	PatientAge     *int   `json:"patient_age"`
	MedicalHistory string `json:"medical_history"`
}

func (h *AdvisoryHandler) TherapyPrecautions(c *gin.Context) {
	var req precautionsRequest
	if !bindJSON(c, &req) {
		return
	}

	result := h.svc.GenerateTherapyPrecautions(c.Request.Context(), advisory.PrecautionsInput{
		TherapyType:    req.TherapyType,
		Dosha:          req.Dosha,
		PatientAge:     req.PatientAge,
		MedicalHistory: req.MedicalHistory,
	})

	respondOK(c, result)
}

type adviceRequest struct {
	Topic   string `json:"topic" binding:"required"`
	Context string `json:"context"`
}

func (h *AdvisoryHandler) GeneralAdvice(c *gin.Context) {
	var req adviceRequest
	if !bindJSON(c, &req) {
		return
	}

	result := h.svc.GenerateGeneralAdvice(c.Request.Context(), req.Topic, req.Context)
	respondOK(c, result)
}
