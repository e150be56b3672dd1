// Package advisory delegates clinical reasoning to an external
// generative-text model. Every operation builds a prompt from structured
// input, asks the model for a strict JSON reply, and parses it into a typed
// result. On any failure the operation returns a fixed, operation-specific
// fallback instead of an error, so callers always have a renderable value.
package advisory

import "github.com/ayursutra/ayursutra/internal/domain"

// Result tags an advisory answer. Degraded marks the documented fallback
// value, returned when the model call or response parsing failed; callers
// can render it exactly like a real answer.
type Result[T any] struct {
	Value    T    `json:"value"`
	Degraded bool `json:"degraded"`
}

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func degraded[T any](v T) Result[T] {
	return Result[T]{Value: v, Degraded: true}
}

type DoshaAnalysis struct {
	PrimaryDosha    domain.Dosha  `json:"primaryDosha"`
	SecondaryDosha  *domain.Dosha `json:"secondaryDosha,omitempty"`
	Confidence      float64       `json:"confidence"`
	Reasoning       string        `json:"reasoning"`
	Characteristics []string      `json:"characteristics"`
	Imbalances      []string      `json:"imbalances"`
}

type TreatmentRecommendation struct {
	TherapyType             string   `json:"therapyType"`
	Duration                string   `json:"duration"`
	Frequency               string   `json:"frequency"`
	Precautions             []string `json:"precautions"`
	Benefits                []string `json:"benefits"`
	Contraindications       []string `json:"contraindications"`
	DietaryRecommendations  []string `json:"dietaryRecommendations"`
	LifestyleAdvice         []string `json:"lifestyleAdvice"`
}

type SymptomAnalysis struct {
	PossibleConditions []string `json:"possibleConditions"`
	Severity           string   `json:"severity"` // mild | moderate | severe
	Urgency            string   `json:"urgency"`  // low | medium | high
	Recommendations    []string `json:"recommendations"`
	FollowUpActions    []string `json:"followUpActions"`
}

type PatientInsight struct {
	Summary         string   `json:"summary"`
	KeyFindings     []string `json:"keyFindings"`
	Recommendations []string `json:"recommendations"`
	RiskFactors     []string `json:"riskFactors"`
	PositiveAspects []string `json:"positiveAspects"`
}

// DoshaInput carries the patient context for a dosha analysis. Symptoms is
// required; the rest is optional color for the prompt.
type DoshaInput struct {
	Symptoms       []string
	Age            *int
	Gender         string
	MedicalHistory string
	Lifestyle      string
}

// InsightInput is the case summary fed to patient-insight generation.
type InsightInput struct {
	Name           string
	Age            *int
	Dosha          string
	Symptoms       []string
	MedicalHistory string
	Therapies      []string
	Feedback       string
}

// PrecautionsInput describes the session a precaution list is generated for.
type PrecautionsInput struct {
	TherapyType    string
	Dosha          string
	PatientAge     *int
	MedicalHistory string
}

func validSeverity(s string) bool {
	return s == "mild" || s == "moderate" || s == "severe"
}

func validUrgency(s string) bool {
	return s == "low" || s == "medium" || s == "high"
}
