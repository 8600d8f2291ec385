package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a generation request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// GenerationMeta holds operational metadata for one explanation generation.
type GenerationMeta struct {
	Slot     string
	Usage    TokenUsage
	Latency  time.Duration
	Fallback bool
}
