package advisory

import "github.com/ayursutra/ayursutra/internal/domain"

// The fallback table. Each value is documented API surface: when an
// operation degrades, its caller receives exactly this.

func fallbackDoshaAnalysis() DoshaAnalysis {
	return DoshaAnalysis{
		PrimaryDosha:    domain.DoshaVata,
		Confidence:      50,
		Reasoning:       "Unable to analyze symptoms at this time",
		Characteristics: []string{"Analysis unavailable"},
		Imbalances:      []string{"Please consult with practitioner"},
	}
}

func fallbackTreatmentRecommendation() TreatmentRecommendation {
	return TreatmentRecommendation{
		TherapyType:            "Consultation recommended",
		Duration:               "To be determined",
		Frequency:              "As advised",
		Precautions:            []string{"Please consult with practitioner"},
		Benefits:               []string{"Professional assessment needed"},
		Contraindications:      []string{"Assessment required"},
		DietaryRecommendations: []string{"Consult practitioner for dietary advice"},
		LifestyleAdvice:        []string{"Professional guidance recommended"},
	}
}

func fallbackSymptomAnalysis() SymptomAnalysis {
	return SymptomAnalysis{
		PossibleConditions: []string{"Consultation recommended"},
		Severity:           "moderate",
		Urgency:            "medium",
		Recommendations:    []string{"Please consult with a qualified practitioner"},
		FollowUpActions:    []string{"Schedule appointment for proper assessment"},
	}
}

func fallbackPatientInsight() PatientInsight {
	return PatientInsight{
		Summary:         "Analysis unavailable at this time",
		KeyFindings:     []string{"Please consult with practitioner"},
		Recommendations: []string{"Professional assessment recommended"},
		RiskFactors:     []string{"Assessment needed"},
		PositiveAspects: []string{"Consultation will provide insights"},
	}
}

func fallbackPrecautions() []string {
	return []string{
		"Consult with practitioner before therapy",
		"Inform about any allergies or sensitivities",
		"Follow practitioner instructions carefully",
		"Report any discomfort immediately",
		"Avoid heavy meals before therapy",
	}
}

const fallbackAdvice = "I apologize, but I cannot provide advice at this time. " +
	"Please consult with a qualified Ayurvedic practitioner for personalized guidance."
