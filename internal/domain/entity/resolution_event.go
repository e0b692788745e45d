package entity

import "time"

type ResolutionOutcome string

const (
	OutcomeFound         ResolutionOutcome = "FOUND"
	OutcomeNotFound      ResolutionOutcome = "NOT_FOUND"
	OutcomeEmptyInput    ResolutionOutcome = "EMPTY_INPUT"
	OutcomeProviderError ResolutionOutcome = "PROVIDER_ERROR"
	OutcomeSuperseded    ResolutionOutcome = "SUPERSEDED"
)

// ResolutionEvent is published after every search.
type ResolutionEvent struct {
	ID           string            `json:"id"`
	SessionID    string            `json:"sessionId,omitempty"`
	Label        string            `json:"label"`
	Outcome      ResolutionOutcome `json:"outcome"`
	MatchedQuery string            `json:"matchedQuery,omitempty"`
	StatusCode   int               `json:"statusCode,omitempty"`
	Attempts     int               `json:"attempts"`
	OccurredAt   time.Time         `json:"occurredAt"`
}
