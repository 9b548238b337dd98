package services

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

const (
	geminiModelName        = "gemini-1.5-flash"
	defaultTemperature     = 0.7
	defaultMaxOutputTokens = 1000
)

// ChatOptions are the caller-tunable generation parameters.
type ChatOptions struct {
	Temperature *float32 `json:"temperature"`
	MaxTokens   *int32   `json:"maxTokens"`
}

// Usage reports upstream token accounting for one turn.
type Usage struct {
	PromptTokens     int32 `json:"promptTokens"`
	CompletionTokens int32 `json:"completionTokens"`
	TotalTokens      int32 `json:"totalTokens"`
}

// AIResponse is a single synchronous completion from a provider.
type AIResponse struct {
	Text  string
	Usage *Usage
}

// AIClient is the interface a chat provider backend implements.
type AIClient interface {
	Chat(ctx context.Context, message string, options ChatOptions) (*AIResponse, error)
}

// GeminiClient implements AIClient on the Google generative AI SDK.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new GeminiClient
func NewGeminiClient(client *genai.Client) *GeminiClient {
	return &GeminiClient{client: client}
}

func (g *GeminiClient) Chat(ctx context.Context, message string, options ChatOptions) (*AIResponse, error) {
	model := g.client.GenerativeModel(geminiModelName)

	temperature := float32(defaultTemperature)
	if options.Temperature != nil {
		temperature = *options.Temperature
	}
	model.SetTemperature(temperature)

	maxTokens := int32(defaultMaxOutputTokens)
	if options.MaxTokens != nil {
		maxTokens = *options.MaxTokens
	}
	model.SetMaxOutputTokens(maxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("gemini returned a non-text part")
	}

	result := &AIResponse{Text: string(text)}
	if resp.UsageMetadata != nil {
		result.Usage = &Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}
	return result, nil
}
