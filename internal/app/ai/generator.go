// Package ai wraps the generative model behind the pastor's assistant,
// the daily quote and the counselor.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrGeneration wraps every failure to produce a usable response.
var ErrGeneration = errors.New("ai generation failed")

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Generator turns a prompt into a JSON document matching schema.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error)
}

// Gemini is a Generator backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator. The model defaults to DefaultModel.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("genai API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrGeneration)
	}
	return []byte(text), nil
}

// Unconfigured is used when no API key is set. Every call fails.
type Unconfigured struct{}

func (Unconfigured) GenerateJSON(context.Context, string, *genai.Schema) ([]byte, error) {
	return nil, fmt.Errorf("%w: assistant is not configured", ErrGeneration)
}
