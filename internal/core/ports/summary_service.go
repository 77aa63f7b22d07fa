package ports

import "context"

// TextGenerator is the capability injected into the summarization gateway.
// Production wires an LLM client; tests substitute a deterministic stub.
// Generation is non-deterministic: the same input may yield different text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// SummaryService produces prose summaries and recommendations from a
// patient's medical history. Failures are recoverable and never affect
// persisted patient state.
type SummaryService interface {
	Summarize(ctx context.Context, patientID string) (string, error)
	Recommend(ctx context.Context, patientID string) (string, error)
}
