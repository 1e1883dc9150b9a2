package llm

import "context"

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client sends one composed prompt blob to a generative-language service.
// An empty Content with a nil error is a valid outcome; callers decide
// how to fall back.
type Client interface {
	Generate(ctx context.Context, prompt string) (Response, error)
}
