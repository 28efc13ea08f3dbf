package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// systemPrompt keeps the model on-topic and on-brand for rental support.
const systemPrompt = "You are a helpful customer service assistant for CARZZ.IN, a vehicle rental " +
	"platform in India. Help customers with car and bike rentals, pricing (cars ₹200/day, bikes " +
	"₹80/day), locations across India, and booking assistance. Keep responses concise and friendly. " +
	"For immediate help, direct them to call 8778634656 or email hello@carzz.in."

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	model.SetTemperature(0.2)
	model.SetMaxOutputTokens(256)

	return &GeminiProvider{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Reply answers one support message with a plain-text response.
func (p *GeminiProvider) Reply(ctx context.Context, message string) (string, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}
	reply := strings.TrimSpace(out.String())
	if reply == "" {
		return "", fmt.Errorf("empty reply from Gemini")
	}
	return reply, nil
}
