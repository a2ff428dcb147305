package agent

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// DefaultModel is the generative model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Model generates the text answer of an expert to a prompt.
type Model interface {
	Generate(ctx context.Context, e *Expert, prompt string) (string, error)
}

// Gemini is a Model served by the Gemini API.
type Gemini struct {
	client *genai.Client
	name   string
}

// NewGemini returns a Gemini model authenticated by apiKey. httpClient may be
// nil, it is where the offline cache is plugged in.
func NewGemini(ctx context.Context, apiKey, model string, httpClient *http.Client) (*Gemini, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Gemini{client: client, name: model}, nil
}

// Generate sends prompt with e's configuration and returns the text of the response.
func (g *Gemini) Generate(ctx context.Context, e *Expert, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.name, genai.Text(prompt), e.Config)
	if err != nil {
		return "", fmt.Errorf("expert %s: %w", e.Name, err)
	}
	return resp.Text(), nil
}
