package ai

import "context"

// LLMProvider is the contract for the chat fallback model. It allows swapping
// providers without touching the chat service.
type LLMProvider interface {
	// Reply answers a single customer-support message.
	Reply(ctx context.Context, message string) (string, error)

	// Close releases provider resources.
	Close()
}
