package advisory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var ErrUnavailable = errors.New("advisory service is not configured")

// Service runs the advisory operations. Failures never propagate: every
// operation logs the cause and returns its fallback, tagged Degraded.
type Service struct {
	gen       Generator
	available bool
	log       *zap.Logger
	tracer    trace.Tracer
	observe   func(operation string, degraded bool)
}

type Option func(*Service)

// WithObserver registers a per-call outcome callback, typically a
// prometheus counter increment.
func WithObserver(fn func(operation string, degraded bool)) Option {
	return func(s *Service) { s.observe = fn }
}

func New(gen Generator, available bool, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		gen:       gen,
		available: available,
		log:       log,
		tracer:    otel.Tracer("advisory"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether a model credential is configured. Callers are
// expected to check this before invoking any operation; calling anyway
// yields the fallback, never an error.
func (s *Service) Available() bool {
	return s.available
}

func (s *Service) AnalyzeDosha(ctx context.Context, in DoshaInput) Result[DoshaAnalysis] {
	ctx, span := s.tracer.Start(ctx, "advisory.analyze_dosha")
	defer span.End()

	var out DoshaAnalysis
	if err := s.generateJSON(ctx, buildDoshaPrompt(in), &out); err != nil {
		return degrade(s, "analyze_dosha", err, fallbackDoshaAnalysis())
	}
	if !out.PrimaryDosha.IsValid() {
		return degrade(s, "analyze_dosha", fmt.Errorf("invalid primary dosha %q", out.PrimaryDosha), fallbackDoshaAnalysis())
	}
	if out.SecondaryDosha != nil && !out.SecondaryDosha.IsValid() {
		out.SecondaryDosha = nil
	}
	if out.Confidence < 0 || out.Confidence > 100 {
		return degrade(s, "analyze_dosha", fmt.Errorf("confidence %v out of range", out.Confidence), fallbackDoshaAnalysis())
	}
	s.done("analyze_dosha")
	return ok(out)
}

func (s *Service) GenerateTreatmentRecommendation(ctx context.Context, dosha string, symptoms []string, therapyType string) Result[TreatmentRecommendation] {
	ctx, span := s.tracer.Start(ctx, "advisory.treatment_recommendation")
	defer span.End()

	var out TreatmentRecommendation
	if err := s.generateJSON(ctx, buildTreatmentPrompt(dosha, symptoms, therapyType), &out); err != nil {
		return degrade(s, "treatment_recommendation", err, fallbackTreatmentRecommendation())
	}
	if strings.TrimSpace(out.TherapyType) == "" {
		return degrade(s, "treatment_recommendation", errors.New("empty therapy type in reply"), fallbackTreatmentRecommendation())
	}
	s.done("treatment_recommendation")
	return ok(out)
}

func (s *Service) AnalyzeSymptoms(ctx context.Context, symptoms []string) Result[SymptomAnalysis] {
	ctx, span := s.tracer.Start(ctx, "advisory.symptom_analysis")
	defer span.End()

	var out SymptomAnalysis
	if err := s.generateJSON(ctx, buildSymptomPrompt(symptoms), &out); err != nil {
		return degrade(s, "symptom_analysis", err, fallbackSymptomAnalysis())
	}
	if !validSeverity(out.Severity) || !validUrgency(out.Urgency) {
		return degrade(s, "symptom_analysis",
			fmt.Errorf("invalid severity %q or urgency %q", out.Severity, out.Urgency),
			fallbackSymptomAnalysis())
	}
	s.done("symptom_analysis")
	return ok(out)
}

func (s *Service) GeneratePatientInsights(ctx context.Context, in InsightInput) Result[PatientInsight] {
	ctx, span := s.tracer.Start(ctx, "advisory.patient_insights")
	defer span.End()

	var out PatientInsight
	if err := s.generateJSON(ctx, buildInsightPrompt(in), &out); err != nil {
		return degrade(s, "patient_insights", err, fallbackPatientInsight())
	}
	if strings.TrimSpace(out.Summary) == "" {
		return degrade(s, "patient_insights", errors.New("empty summary in reply"), fallbackPatientInsight())
	}
	s.done("patient_insights")
	return ok(out)
}

func (s *Service) GenerateTherapyPrecautions(ctx context.Context, in PrecautionsInput) Result[[]string] {
	ctx, span := s.tracer.Start(ctx, "advisory.therapy_precautions")
	defer span.End()

	var out []string
	if err := s.generateJSON(ctx, buildPrecautionsPrompt(in), &out); err != nil {
		return degrade(s, "therapy_precautions", err, fallbackPrecautions())
	}
	if len(out) == 0 {
		return degrade(s, "therapy_precautions", errors.New("empty precaution list in reply"), fallbackPrecautions())
	}
	s.done("therapy_precautions")
	return ok(out)
}

func (s *Service) GenerateGeneralAdvice(ctx context.Context, topic, context_ string) Result[string] {
	ctx, span := s.tracer.Start(ctx, "advisory.general_advice")
	defer span.End()

	text, err := s.gen.Generate(ctx, buildAdvicePrompt(topic, context_))
	if err != nil {
		return degrade(s, "general_advice", err, fallbackAdvice)
	}
	if strings.TrimSpace(text) == "" {
		return degrade(s, "general_advice", errors.New("empty reply"), fallbackAdvice)
	}
	s.done("general_advice")
	return ok(strings.TrimSpace(text))
}

// generateJSON calls the model and decodes the reply into out. Models
// sometimes wrap the JSON in a markdown code fence despite the prompt;
// the fence is stripped before the strict parse.
func (s *Service) generateJSON(ctx context.Context, prompt string, out any) error {
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), out); err != nil {
		return fmt.Errorf("parsing model reply: %w", err)
	}
	return nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}

// degrade is a package function because Go methods cannot carry their own
// type parameters.
func degrade[T any](s *Service, operation string, err error, fallback T) Result[T] {
	s.log.Warn("advisory operation degraded",
		zap.String("operation", operation),
		zap.Error(err),
	)
	if s.observe != nil {
		s.observe(operation, true)
	}
	return degraded(fallback)
}

func (s *Service) done(operation string) {
	if s.observe != nil {
		s.observe(operation, false)
	}
}
