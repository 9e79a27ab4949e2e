package ai

import "context"

// TextGenerator is the contract between the orchestrator and the model
// endpoint: one prompt in, one raw text payload out, or an error once the
// client's own transport retries are exhausted. Swapping providers (or
// injecting a fake in tests) means implementing this one method.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
