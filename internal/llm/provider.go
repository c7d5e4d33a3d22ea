package llm

import (
	"context"

	"github.com/NapaConcierge/concierge-api/internal/types"
)

// Provider abstracts the external text-completion service. The system
// treats it as a black box: one synchronous call, no retries, no
// streaming, no caching.
type Provider interface {
	Complete(ctx context.Context, systemPrompt string, history []types.ChatTurn) (string, error)
}
