package llm

import "context"

// Provider is the generator port: prompt in, text out. Failures surface as
// errors the orchestrator converts into user-visible fallback answers.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
