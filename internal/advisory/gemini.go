package advisory

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/ayursutra/ayursutra/internal/config"
)

// Generator is the single-shot text-generation facade. The production
// implementation calls the hosted generative-language API; tests substitute
// a stub.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type generateRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GeminiClient is the REST Generator implementation. Generation parameters
// are fixed at construction for reproducible behavior across calls.
type GeminiClient struct {
	http   *resty.Client
	apiKey string
	model  string
	gen    generationConfig
}

func NewGeminiClient(cfg config.AIConfig) *GeminiClient {
	return &GeminiClient{
		http: resty.New().
			SetBaseURL(geminiBaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("Content-Type", "application/json"),
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		gen: generationConfig{
			Temperature:     cfg.Temperature,
			TopK:            cfg.TopK,
			TopP:            cfg.TopP,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
	}
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(generateRequest{
			Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
			GenerationConfig: c.gen,
		}).
		SetResult(&out).
		SetError(&out).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("calling generative model: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil {
			return "", fmt.Errorf("generative model error %d: %s", out.Error.Code, out.Error.Message)
		}
		return "", fmt.Errorf("generative model returned status %d", resp.StatusCode())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("generative model returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
