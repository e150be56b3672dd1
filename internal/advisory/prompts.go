package advisory

import (
	"fmt"
	"strings"
)

// Prompt builders embed the structured input into a natural-language
// instruction and demand a JSON-only reply matching the documented shape.

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func ageOrDefault(age *int) string {
	if age == nil {
		return "Not specified"
	}
	return fmt.Sprintf("%d", *age)
}

func buildDoshaPrompt(in DoshaInput) string {
	return fmt.Sprintf(`You are an expert Ayurvedic practitioner. Analyze the following patient information and provide a dosha diagnosis.

Patient Information:
- Age: %s
- Gender: %s
- Medical History: %s
- Lifestyle: %s

Symptoms: %s

Please provide a detailed analysis in the following JSON format:
{
  "primaryDosha": "Vata" | "Pitta" | "Kapha",
  "secondaryDosha": "Vata" | "Pitta" | "Kapha" | null,
  "confidence": number (0-100),
  "reasoning": "Detailed explanation of the diagnosis",
  "characteristics": ["List of dosha characteristics observed"],
  "imbalances": ["List of specific imbalances identified"]
}

Focus on:
1. Traditional Ayurvedic principles
2. Symptom patterns and their dosha associations
3. Constitutional analysis
4. Current imbalances
5. Provide practical, actionable insights

Respond only with valid JSON, no additional text.`,
		ageOrDefault(in.Age),
		orDefault(in.Gender, "Not specified"),
		orDefault(in.MedicalHistory, "None provided"),
		orDefault(in.Lifestyle, "Not specified"),
		strings.Join(in.Symptoms, ", "),
	)
}

func buildTreatmentPrompt(dosha string, symptoms []string, therapyType string) string {
	return fmt.Sprintf(`You are an expert Ayurvedic practitioner. Generate comprehensive treatment recommendations.

Patient Profile:
- Primary Dosha: %s
- Symptoms: %s
- Requested Therapy: %s

Provide detailed treatment recommendations in this JSON format:
{
  "therapyType": "Specific therapy recommended",
  "duration": "Recommended duration",
  "frequency": "How often to perform",
  "precautions": ["List of important precautions"],
  "benefits": ["Expected benefits"],
  "contraindications": ["When not to use this treatment"],
  "dietaryRecommendations": ["Dietary advice"],
  "lifestyleAdvice": ["Lifestyle modifications"]
}

Focus on:
1. Traditional Ayurvedic treatments
2. Safety considerations
3. Practical implementation
4. Holistic approach including diet and lifestyle
5. Specific to the patient's dosha and symptoms

Respond only with valid JSON, no additional text.`,
		dosha,
		strings.Join(symptoms, ", "),
		orDefault(therapyType, "General recommendation"),
	)
}

func buildSymptomPrompt(symptoms []string) string {
	return fmt.Sprintf(`You are an expert Ayurvedic practitioner. Analyze these symptoms for potential conditions and urgency.

Symptoms: %s

Provide analysis in this JSON format:
{
  "possibleConditions": ["List of possible Ayurvedic conditions"],
  "severity": "mild" | "moderate" | "severe",
  "urgency": "low" | "medium" | "high",
  "recommendations": ["Immediate recommendations"],
  "followUpActions": ["Next steps to take"]
}

Consider:
1. Traditional Ayurvedic diagnosis
2. Symptom severity and patterns
3. Urgency of medical attention needed
4. Practical next steps
5. When to seek immediate care

Respond only with valid JSON, no additional text.`,
		strings.Join(symptoms, ", "),
	)
}

func buildInsightPrompt(in InsightInput) string {
	return fmt.Sprintf(`You are an expert Ayurvedic practitioner reviewing a patient's case. Generate comprehensive insights.

Patient Data:
- Name: %s
- Age: %s
- Dosha: %s
- Current Symptoms: %s
- Medical History: %s
- Previous Therapies: %s
- Recent Feedback: %s

Provide insights in this JSON format:
{
  "summary": "Brief overview of patient's condition and progress",
  "keyFindings": ["Important observations about the patient"],
  "recommendations": ["Specific recommendations for treatment"],
  "riskFactors": ["Potential risks or concerns"],
  "positiveAspects": ["Positive developments or strengths"]
}

Focus on:
1. Holistic patient assessment
2. Progress tracking
3. Treatment optimization
4. Risk management
5. Positive reinforcement
6. Practical next steps

Respond only with valid JSON, no additional text.`,
		in.Name,
		ageOrDefault(in.Age),
		in.Dosha,
		strings.Join(in.Symptoms, ", "),
		orDefault(in.MedicalHistory, "None provided"),
		strings.Join(in.Therapies, ", "),
		orDefault(in.Feedback, "None provided"),
	)
}

func buildPrecautionsPrompt(in PrecautionsInput) string {
	return fmt.Sprintf(`You are an expert Ayurvedic practitioner. Generate specific precautions for a therapy session.

Therapy: %s
Patient Dosha: %s
Age: %s
Medical History: %s

Generate a list of 5-8 specific precautions in this format:
["Precaution 1", "Precaution 2", "Precaution 3", ...]

Focus on:
1. Safety considerations specific to the therapy
2. Dosha-specific precautions
3. Age-related considerations
4. Medical history considerations
5. Practical implementation advice

Respond only with a JSON array of strings, no additional text.`,
		in.TherapyType,
		in.Dosha,
		ageOrDefault(in.PatientAge),
		orDefault(in.MedicalHistory, "None provided"),
	)
}

func buildAdvicePrompt(topic, context string) string {
	return fmt.Sprintf(`You are an expert Ayurvedic practitioner. Provide helpful advice on the following topic.

Topic: %s
Context: %s

Provide practical, evidence-based Ayurvedic advice in 2-3 paragraphs. Focus on:
1. Traditional Ayurvedic principles
2. Practical applications
3. Safety considerations
4. Holistic approach

Keep the response concise but informative.`,
		topic,
		orDefault(context, "General inquiry"),
	)
}
