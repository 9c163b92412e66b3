package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction over the generation backend.
// Consumers call Generate with a Request and receive the backend's raw
// output. Providers never parse the generated content; that is the
// caller's concern.
type Provider interface {
	// Generate sends a prompt to the backend and returns its response.
	// The request's Schema field, when set, instructs the provider to use
	// its native structured-output mechanism. The response Content is the
	// first non-empty text the backend returned, unparsed.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the backend.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation history. Question generation is
	// single-turn, so this normally contains one user message.
	Messages []Message

	// Schema is the JSON Schema the response should conform to.
	// When set, the provider requests structured output from the backend.
	// When nil, the response Content is freeform text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON structure requested from the backend.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, tool name for
	// Anthropic). Kebab-case, e.g. "quiz-question".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the backend to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the backend's output.
type Response struct {
	// Content is the raw generated output as returned by the backend.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
