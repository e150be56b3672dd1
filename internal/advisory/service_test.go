package advisory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayursutra/ayursutra/internal/advisory"
	"github.com/ayursutra/ayursutra/internal/domain"
)

type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) Generate(context.Context, string) (string, error) {
	return s.reply, s.err
}

func newService(gen advisory.Generator) *advisory.Service {
	return advisory.New(gen, true, zap.NewNop())
}

func TestAnalyzeDoshaParsesModelReply(t *testing.T) {
	gen := &stubGenerator{reply: `{
		"primaryDosha": "Pitta",
		"secondaryDosha": "Vata",
		"confidence": 85,
		"reasoning": "Heat-dominant symptom pattern",
		"characteristics": ["sharp appetite"],
		"imbalances": ["excess heat"]
	}`}

	result := newService(gen).AnalyzeDosha(context.Background(), advisory.DoshaInput{
		Symptoms: []string{"acid reflux", "irritability"},
	})

	require.False(t, result.Degraded)
	require.Equal(t, domain.DoshaPitta, result.Value.PrimaryDosha)
	require.NotNil(t, result.Value.SecondaryDosha)
	require.Equal(t, domain.DoshaVata, *result.Value.SecondaryDosha)
	require.InDelta(t, 85, result.Value.Confidence, 0.001)
}

func TestAnalyzeDoshaStripsMarkdownCodeFence(t *testing.T) {
	gen := &stubGenerator{reply: "```json\n{\"primaryDosha\":\"Kapha\",\"confidence\":70,\"reasoning\":\"r\",\"characteristics\":[],\"imbalances\":[]}\n```"}

	result := newService(gen).AnalyzeDosha(context.Background(), advisory.DoshaInput{Symptoms: []string{"lethargy"}})

	require.False(t, result.Degraded)
	require.Equal(t, domain.DoshaKapha, result.Value.PrimaryDosha)
}

func TestAnalyzeDoshaFallsBackOnModelError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}

	result := newService(gen).AnalyzeDosha(context.Background(), advisory.DoshaInput{Symptoms: []string{"anxiety"}})

	require.True(t, result.Degraded)
	require.Equal(t, domain.DoshaVata, result.Value.PrimaryDosha)
	require.Nil(t, result.Value.SecondaryDosha)
	require.InDelta(t, 50, result.Value.Confidence, 0.001)
	require.Equal(t, "Unable to analyze symptoms at this time", result.Value.Reasoning)
	require.Equal(t, []string{"Analysis unavailable"}, result.Value.Characteristics)
	require.Equal(t, []string{"Please consult with practitioner"}, result.Value.Imbalances)
}

func TestAnalyzeDoshaFallsBackOnGarbageReply(t *testing.T) {
	gen := &stubGenerator{reply: "I think the patient is mostly Vata with some Pitta."}

	result := newService(gen).AnalyzeDosha(context.Background(), advisory.DoshaInput{Symptoms: []string{"anxiety"}})

	require.True(t, result.Degraded)
	require.Equal(t, domain.DoshaVata, result.Value.PrimaryDosha)
}

func TestAnalyzeDoshaRejectsOutOfRangeConfidence(t *testing.T) {
	gen := &stubGenerator{reply: `{"primaryDosha":"Pitta","confidence":250,"reasoning":"r","characteristics":[],"imbalances":[]}`}

	result := newService(gen).AnalyzeDosha(context.Background(), advisory.DoshaInput{Symptoms: []string{"x"}})

	require.True(t, result.Degraded)
	require.InDelta(t, 50, result.Value.Confidence, 0.001)
}

func TestAnalyzeSymptomsValidatesSeverityAndUrgency(t *testing.T) {
	gen := &stubGenerator{reply: `{
		"possibleConditions": ["agni imbalance"],
		"severity": "catastrophic",
		"urgency": "medium",
		"recommendations": [],
		"followUpActions": []
	}`}

	result := newService(gen).AnalyzeSymptoms(context.Background(), []string{"nausea"})

	require.True(t, result.Degraded)
	require.Equal(t, "moderate", result.Value.Severity)
	require.Equal(t, "medium", result.Value.Urgency)
	require.Equal(t, []string{"Consultation recommended"}, result.Value.PossibleConditions)
}

func TestTreatmentRecommendationFallback(t *testing.T) {
	gen := &stubGenerator{err: errors.New("timeout")}

	result := newService(gen).GenerateTreatmentRecommendation(context.Background(), "Pitta", []string{"heartburn"}, "Virechana")

	require.True(t, result.Degraded)
	require.Equal(t, "Consultation recommended", result.Value.TherapyType)
	require.Equal(t, "To be determined", result.Value.Duration)
	require.Equal(t, []string{"Please consult with practitioner"}, result.Value.Precautions)
}

func TestTherapyPrecautionsRejectsEmptyList(t *testing.T) {
	gen := &stubGenerator{reply: `[]`}

	result := newService(gen).GenerateTherapyPrecautions(context.Background(), advisory.PrecautionsInput{
		TherapyType: "Shirodhara",
		Dosha:       "Vata",
	})

	require.True(t, result.Degraded)
	require.Len(t, result.Value, 5)
	require.Equal(t, "Consult with practitioner before therapy", result.Value[0])
}

func TestTherapyPrecautionsParsesList(t *testing.T) {
	gen := &stubGenerator{reply: `["Keep the head warm afterwards", "Avoid screens for an hour"]`}

	result := newService(gen).GenerateTherapyPrecautions(context.Background(), advisory.PrecautionsInput{
		TherapyType: "Shirodhara",
		Dosha:       "Vata",
	})

	require.False(t, result.Degraded)
	require.Len(t, result.Value, 2)
}

func TestGeneralAdviceTrimsAndFallsBack(t *testing.T) {
	result := newService(&stubGenerator{reply: "  Favor warm, cooked meals.  \n"}).
		GenerateGeneralAdvice(context.Background(), "diet", "Vata season")
	require.False(t, result.Degraded)
	require.Equal(t, "Favor warm, cooked meals.", result.Value)

	degraded := newService(&stubGenerator{err: errors.New("down")}).
		GenerateGeneralAdvice(context.Background(), "diet", "")
	require.True(t, degraded.Degraded)
	require.Contains(t, degraded.Value, "qualified Ayurvedic practitioner")
}

func TestAvailableReflectsConfiguration(t *testing.T) {
	require.True(t, advisory.New(&stubGenerator{}, true, zap.NewNop()).Available())
	require.False(t, advisory.New(&stubGenerator{}, false, zap.NewNop()).Available())
}

func TestObserverReceivesOutcomes(t *testing.T) {
	type call struct {
		op       string
		degraded bool
	}
	var calls []call
	observer := func(op string, degraded bool) {
		calls = append(calls, call{op, degraded})
	}

	svc := advisory.New(
		&stubGenerator{reply: `{"primaryDosha":"Vata","confidence":60,"reasoning":"r","characteristics":[],"imbalances":[]}`},
		true,
		zap.NewNop(),
		advisory.WithObserver(observer),
	)
	svc.AnalyzeDosha(context.Background(), advisory.DoshaInput{Symptoms: []string{"x"}})

	failing := advisory.New(&stubGenerator{err: errors.New("down")}, true, zap.NewNop(), advisory.WithObserver(observer))
	failing.AnalyzeSymptoms(context.Background(), []string{"x"})

	require.Equal(t, []call{
		{"analyze_dosha", false},
		{"symptom_analysis", true},
	}, calls)
}
