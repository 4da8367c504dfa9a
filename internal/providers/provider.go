package providers

import (
	"context"
	"fmt"
)

// FeedbackRequest contains the prompt material sent to an external model for
// one file's issue group.
type FeedbackRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// FeedbackResponse contains the raw response from an external model.
type FeedbackResponse struct {
	Content    string
	TokensUsed int
}

// Generator is the external feedback capability interface. Implementations
// may fail for any reason; callers must treat failure as "unavailable" and
// fall back to local templates.
type Generator interface {
	Generate(ctx context.Context, req FeedbackRequest) (FeedbackResponse, error)
	Name() string
}

// New creates a provider by name.
func New(provider, model string) (Generator, error) {
	switch provider {
	case "openai":
		return NewOpenAI(model)
	case "ollama", "lmstudio":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
