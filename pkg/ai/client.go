// pkg/ai/client.go

package ai

import "context"

// Client drafts report text from a prompt.
type Client interface {
	GenerateReport(ctx context.Context, prompt string) (string, error)
}
